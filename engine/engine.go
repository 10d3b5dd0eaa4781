// Package engine 把三路召回（协同/内容/趋势）编排成一次推荐请求。
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/affinity/core"
	"github.com/rushteam/affinity/pipeline"
	"github.com/rushteam/affinity/pref"
	"github.com/rushteam/affinity/recall"
)

// 结果元信息常量。置信度目前是静态值，模型上线后由打分服务回填。
const (
	AlgorithmVersion  = "collaborative_filtering_v1"
	DefaultConfidence = 0.85
)

// Engine 是推荐引擎：对一次请求并发执行三路召回并合并结果。
//
// 三路相互独立：
//   - 协同召回（recall.Collaborative）：基于用户画像余弦相似度的 u2u
//   - 内容召回（recall.Content）：偏好加权的目录打分，可选接
//     ContentPipeline 做过滤/重排
//   - 趋势块（recall.Trending）：静态榜单，永不失败
//
// 失败语义：
//   - 用户不存在按匿名请求处理（协同为空、内容走默认模式）
//   - 目标用户偏好编码损坏是硬错误，中断整个请求
//   - 任一路召回出错时整个请求失败（errgroup 语义）
type Engine struct {
	// Users 用户数据源；为 nil 时所有请求按匿名处理
	Users core.UserStore

	// Collaborative 协同召回
	Collaborative *recall.Collaborative

	// Content 内容召回
	Content *recall.Content

	// ContentPipeline 内容召回后的可选处理链（filter/rerank）
	ContentPipeline *pipeline.Pipeline

	// Trending 趋势块提供方
	Trending *recall.Trending

	// Logger 结构化日志；零值时不输出
	Logger zerolog.Logger
}

// New 创建使用内置目录与默认参数的推荐引擎。
func New(users core.UserStore) *Engine {
	return &Engine{
		Users:         users,
		Collaborative: &recall.Collaborative{Users: users},
		Content: &recall.Content{
			Catalog: core.DefaultCatalog(),
			Sampler: recall.NewRandSampler(time.Now().UnixNano()),
		},
		Trending: &recall.Trending{},
		Logger:   zerolog.Nop(),
	}
}

// Recommend 执行一次推荐请求。userID 为 0 表示匿名请求。
func (e *Engine) Recommend(ctx context.Context, userID int64) (*core.Result, error) {
	start := time.Now()

	rctx := &core.RecommendContext{
		UserID: userID,
		Scene:  "recommendations",
		Prefs:  core.PreferenceMap{},
	}

	// 加载目标用户画像；用户不存在降级为匿名，偏好编码损坏则中断
	if userID != 0 && e.Users != nil {
		user, err := e.Users.LoadUser(ctx, userID)
		switch {
		case core.IsUserNotFound(err):
			e.Logger.Debug().Int64("user_id", userID).Msg("user not found, falling back to anonymous")
		case err != nil:
			return nil, err
		default:
			prefs, err := pref.ParseUser(user)
			if err != nil {
				return nil, err
			}
			rctx.Prefs = prefs
		}
	}

	var (
		collaborative []core.UserMatch
		content       []core.ScoredContent
		trending      []core.TrendingBlock
	)

	eg, gctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if e.Collaborative == nil {
			return nil
		}
		matches, err := e.Collaborative.Recommend(gctx, userID)
		if err != nil {
			return err
		}
		collaborative = matches
		return nil
	})

	eg.Go(func() error {
		if e.Content == nil {
			return nil
		}
		items, err := e.Content.Recall(gctx, rctx)
		if err != nil {
			return err
		}
		if e.ContentPipeline != nil {
			items, err = e.ContentPipeline.Run(gctx, rctx, items)
			if err != nil {
				return err
			}
		}
		content = recall.ScoredContentFromItems(items)
		return nil
	})

	eg.Go(func() error {
		if e.Trending == nil {
			return nil
		}
		trending = e.Trending.Load(gctx)
		return nil
	})

	if err := eg.Wait(); err != nil {
		e.Logger.Error().Err(err).Int64("user_id", userID).Msg("recommend failed")
		return nil, err
	}

	if collaborative == nil {
		collaborative = []core.UserMatch{}
	}
	if content == nil {
		content = []core.ScoredContent{}
	}
	if trending == nil {
		trending = []core.TrendingBlock{}
	}

	elapsed := time.Since(start)
	e.Logger.Info().
		Int64("user_id", userID).
		Int("collaborative", len(collaborative)).
		Int("content", len(content)).
		Int("trending", len(trending)).
		Dur("elapsed", elapsed).
		Msg("recommend done")

	return &core.Result{
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Recommendations: core.Recommendations{
			Collaborative: collaborative,
			Content:       content,
			Trending:      trending,
		},
		Metadata: core.ResultMeta{
			Algorithm:        AlgorithmVersion,
			Confidence:       DefaultConfidence,
			ProcessingTimeMS: elapsed.Milliseconds(),
		},
	}, nil
}
