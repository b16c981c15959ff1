package vm

import (
	"fmt"
	"strings"
	"sync"
)

// Memoized is the default acceleration backend: because samplers are pure
// functions of (key, args, shape), repeated invocations with identical inputs
// can be answered from a cache. Safe for concurrent callers.
func Memoized(fn Fn) Fn {
	var mu sync.Mutex

	cache := make(map[string]*DrawSet)

	return func(key Key, args []Value, sampleShape []int) (*DrawSet, error) {
		ck := cacheKey(key, args, sampleShape)

		mu.Lock()
		cached, ok := cache[ck]
		mu.Unlock()

		if ok {
			return cached, nil
		}

		ds, err := fn(key, args, sampleShape)
		if err != nil {
			return nil, err
		}

		mu.Lock()
		cache[ck] = ds
		mu.Unlock()

		return ds, nil
	}
}

func cacheKey(key Key, args []Value, sampleShape []int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d|%v|", uint64(key), sampleShape)

	for _, arg := range args {
		fmt.Fprintf(&b, "%v:%v;", arg.Shape(), arg.Data())
	}

	return b.String()
}
