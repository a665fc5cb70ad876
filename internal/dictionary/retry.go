package dictionary

import (
	"context"
	"time"
)

// retry は fn を最大 maxAttempts 回実行します。
// 待ち時間は delay × 試行回数 (線形) で、ctx がキャンセルされたら中断します。
func retry(ctx context.Context, maxAttempts int, delay time.Duration, fn func(attempt int) error, retryable func(error) bool) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if !retryable(err) || attempt == maxAttempts {
			return err
		}

		timer := time.NewTimer(delay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
