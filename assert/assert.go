package assert

import (
	"github.com/bloeys/nchess/consts"
	"github.com/bloeys/nchess/logging"
)

// T panics with the formatted message if check is false. It does nothing in release builds.
func T(check bool, msg string, args ...any) {
	if consts.Debug && !check {
		logging.ErrLog.Panicf("Assert failed: "+msg, args...)
	}
}
