package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, Key([]byte("abc")), Key([]byte("abc")))
	assert.NotEqual(t, Key([]byte("ab"), []byte("c")), Key([]byte("a"), []byte("bc")))
	assert.Len(t, Key(nil), 64)
}

func TestMemoDo(t *testing.T) {
	m := NewMemo[int](0)
	calls := 0
	fn := func() (int, error) { calls++; return 42, nil }

	v, err := m.Do("k", fn)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	v, err = m.Do("k", fn)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestMemoCachesErrors(t *testing.T) {
	m := NewMemo[string](0)
	boom := errors.New("boom")
	calls := 0
	for i := 0; i < 3; i++ {
		_, err := m.Do("bad", func() (string, error) { calls++; return "", boom })
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 1, calls)
}

func TestMemoBounded(t *testing.T) {
	m := NewMemo[int](2)
	for _, k := range []string{"a", "b", "c"} {
		_, _ = m.Do(k, func() (int, error) { return 1, nil })
	}
	assert.Equal(t, 1, m.Len())
	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestMemoConcurrent(t *testing.T) {
	m := NewMemo[int](0)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.Do(Key([]byte("same")), func() (int, error) { return 7, nil })
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, m.Len())
}
