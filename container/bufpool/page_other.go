//go:build !unix

package bufpool

import "os"

func pageSize() int {
	return os.Getpagesize()
}
