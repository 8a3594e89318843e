package workflow

import "time"

// SetNow fija el reloj del engine en tests externos.
func (e *Engine) SetNow(fn func() time.Time) { e.now = fn }
