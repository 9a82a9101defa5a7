/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package memcache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bennypowers/weslink/ast"
	"github.com/bennypowers/weslink/modpath"
	"github.com/bennypowers/weslink/provider"
	"github.com/bennypowers/weslink/provider/memcache"
)

type countingProvider struct {
	loads atomic.Int32
}

func (c *countingProvider) ResolveSource(context.Context, modpath.Path) (string, error) {
	c.loads.Add(1)
	return "source", nil
}
func (c *countingProvider) ResolveModule(ctx context.Context, path modpath.Path, parse provider.ParseFunc) (*ast.TranslationUnit, error) {
	return provider.DefaultResolveModule(ctx, c, path, parse)
}
func (c *countingProvider) DisplayName(modpath.Path) (string, bool) { return "", false }

func TestConcurrentResolveSourceLoadsOnce(t *testing.T) {
	inner := &countingProvider{}
	c := memcache.New(inner, 10)

	var wg sync.WaitGroup
	path := modpath.New("a")
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.ResolveSource(context.Background(), path); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if got := inner.loads.Load(); got != 1 {
		t.Errorf("expected exactly one underlying load, got %d", got)
	}
}

func TestEvictsOldestBeyondMaxSize(t *testing.T) {
	inner := &countingProvider{}
	c := memcache.New(inner, 1)

	ctx := context.Background()
	c.ResolveSource(ctx, modpath.New("a"))
	c.ResolveSource(ctx, modpath.New("b"))

	if c.Size() != 1 {
		t.Errorf("expected eviction to keep size at 1, got %d", c.Size())
	}
}
