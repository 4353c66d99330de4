// Package guard switches the binary into test mode when imported by a test.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("SHOP_TEST_MODE") == "" {
			_ = os.Setenv("SHOP_TEST_MODE", "1")
		}
	})
}
