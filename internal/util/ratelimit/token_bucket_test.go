package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTokenBucket_Basic(t *testing.T) {
	// 容量 5，每秒補充 2 個 token
	config := Config{
		Capacity:   5,
		RatePS:     2,
		RefillRate: 100 * time.Millisecond,
	}
	bucket := NewTokenBucket(&config)
	defer bucket.Stop()

	// 初始容量應可用完
	for i := 0; i < 5; i++ {
		if !bucket.Allow() {
			t.Errorf("應該允許第 %d 次請求", i+1)
		}
	}

	// 第6次應該被拒絕
	if bucket.Allow() {
		t.Error("超過容量限制應該被拒絕")
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	config := Config{
		Capacity:   2,
		RatePS:     1,
		RefillRate: time.Second,
	}
	bucket := NewTokenBucket(&config)
	defer bucket.Stop()

	// 消耗所有token
	bucket.Allow()
	bucket.Allow()

	if bucket.Allow() {
		t.Error("應該沒有可用的token")
	}

	// 等待1.1秒，應該補充了1個token
	time.Sleep(1100 * time.Millisecond)

	if !bucket.Allow() {
		t.Error("應該有1個新的token可用")
	}

	if bucket.Allow() {
		t.Error("不應該有第2個token可用")
	}
}

func TestTokenBucket_Concurrent(t *testing.T) {
	config := Config{
		Capacity:   100,
		RatePS:     0,
		RefillRate: time.Hour,
	}
	bucket := NewTokenBucket(&config)
	defer bucket.Stop()

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if bucket.Allow() {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	// 不補充的情況下，放行總數不能超過容量
	if allowed.Load() != 100 {
		t.Errorf("放行數量應為 100，得到 %d", allowed.Load())
	}
}

func TestTokenBucket_DefaultConfig(t *testing.T) {
	bucket := NewTokenBucket(nil)
	defer bucket.Stop()

	if bucket.Capacity != 100 {
		t.Errorf("預設容量應為 100，得到 %d", bucket.Capacity)
	}
	if !bucket.Allow() {
		t.Error("預設配置下第一次請求應該被允許")
	}
}

func TestTokenBucket_StopIdempotent(t *testing.T) {
	bucket := NewTokenBucket(nil)
	bucket.Stop()
	bucket.Stop()
}
