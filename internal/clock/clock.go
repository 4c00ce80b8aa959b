package clock

import "time"

// NowFunc returns the current time. Tests replace it to freeze decision timestamps.
var NowFunc = time.Now

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }
