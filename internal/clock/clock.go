package clock

import "time"

// Clock 讓服務層可以注入時間
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem 使用 time.Now (UTC)
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed 永遠回傳同一時間 (測試用)
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}
