package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quiz_admin_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const answerKeyTTL = 10 * time.Minute

// AnswerKeyCache 答案键缓存。rdb 为 nil 时所有操作直接穿透
type AnswerKeyCache struct {
	rdb *redis.Client
}

func NewAnswerKeyCache(rdb *redis.Client) *AnswerKeyCache {
	return &AnswerKeyCache{rdb: rdb}
}

func (c *AnswerKeyCache) key(quizID uint) string {
	return fmt.Sprintf("quiz:answer_key:%d", quizID)
}

func (c *AnswerKeyCache) Get(ctx context.Context, quizID uint) (map[uint]uint, bool) {
	if c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, c.key(quizID)).Bytes()
	if err != nil {
		return nil, false
	}

	var answerKey map[uint]uint
	if err := json.Unmarshal(data, &answerKey); err != nil {
		return nil, false
	}
	return answerKey, true
}

func (c *AnswerKeyCache) Set(ctx context.Context, quizID uint, answerKey map[uint]uint) {
	if c.rdb == nil {
		return
	}

	data, err := json.Marshal(answerKey)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(quizID), data, answerKeyTTL).Err(); err != nil {
		logger.Log.Warn("answer key cache set failed", zap.Uint("quiz_id", quizID), zap.Error(err))
	}
}

// Invalidate 试卷编辑/删除后必须清掉旧答案键
func (c *AnswerKeyCache) Invalidate(ctx context.Context, quizID uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key(quizID)).Err(); err != nil {
		logger.Log.Warn("answer key cache invalidate failed", zap.Uint("quiz_id", quizID), zap.Error(err))
	}
}
