package follow

import (
	"io"

	"github.com/nxadm/tail"
)

// openTail starts tailing path at from. A nil from reads from the start.
func openTail(path string, from *tail.SeekInfo, poll bool) (*tail.Tail, error) {
	return tail.TailFile(path, tail.Config{
		Location:  from,
		ReOpen:    true,
		Follow:    true,
		MustExist: true,
		Poll:      poll,
		Logger:    tail.DiscardingLogger,
	})
}

func stopTail(t *tail.Tail) {
	_ = t.Stop()
	t.Cleanup()
}

func seekEnd() *tail.SeekInfo {
	return &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
}

func seekTo(offset int64) *tail.SeekInfo {
	return &tail.SeekInfo{Offset: offset, Whence: io.SeekStart}
}
