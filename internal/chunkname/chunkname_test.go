package chunkname_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullstack-dev/useclient-transform/internal/chunkname"
)

func TestSanitizedBasenameStripsExtension(t *testing.T) {
	require.Equal(t, "widget", chunkname.SanitizedBasename("/src/components/widget.tsx"))
}

func TestSanitizedBasenameReplacesNonIdentRuns(t *testing.T) {
	require.Equal(t, "my_weird_name", chunkname.SanitizedBasename("/src/my weird!!name.tsx"))
}

func TestFileHash12IsDeterministic(t *testing.T) {
	a := chunkname.FileHash12("const x = 1;")
	b := chunkname.FileHash12("const x = 1;")
	require.Equal(t, a, b)
	require.Len(t, a, 12)
}

func TestFileHash12DiffersOnContentChange(t *testing.T) {
	a := chunkname.FileHash12("const x = 1;")
	b := chunkname.FileHash12("const x = 2;")
	require.NotEqual(t, a, b)
}

func TestHash12IsPathSensitive(t *testing.T) {
	fileHash := chunkname.FileHash12("const x = 1;")
	a := chunkname.Hash12(fileHash, 10, "/src/a.tsx")
	b := chunkname.Hash12(fileHash, 10, "/src/b.tsx")
	require.NotEqual(t, a, b)
}

func TestHash12IsOffsetSensitive(t *testing.T) {
	fileHash := chunkname.FileHash12("const x = 1;")
	a := chunkname.Hash12(fileHash, 10, "/src/a.tsx")
	b := chunkname.Hash12(fileHash, 20, "/src/a.tsx")
	require.NotEqual(t, a, b)
}

func TestHash12IsStableAcrossSlashStyles(t *testing.T) {
	fileHash := chunkname.FileHash12("const x = 1;")
	a := chunkname.Hash12(fileHash, 10, "/src/a.tsx")
	b := chunkname.Hash12(fileHash, 10, `\src\a.tsx`)
	require.Equal(t, a, b)
}

func TestNameFormat(t *testing.T) {
	name := chunkname.Name("/src/widget.tsx", "abcdef012345", "tsx")
	require.Equal(t, "widget.abcdef012345.client.tsx", name)
}

func TestRegistrySetGet(t *testing.T) {
	r := chunkname.NewRegistry()
	_, ok := r.Get("missing")
	require.False(t, ok)

	r.Set("id-1", "export default 1;")
	text, ok := r.Get("id-1")
	require.True(t, ok)
	require.Equal(t, "export default 1;", text)
}

func TestRegistryClearRemovesEntries(t *testing.T) {
	r := chunkname.NewRegistry()
	r.Set("id-1", "export default 1;")
	r.Clear()
	_, ok := r.Get("id-1")
	require.False(t, ok)
}

func TestRegistryPerInstanceIsolation(t *testing.T) {
	a := chunkname.NewRegistry()
	b := chunkname.NewRegistry()
	a.Set("id-1", "from-a")
	_, ok := b.Get("id-1")
	require.False(t, ok)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := chunkname.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.Set("id", "text")
		}(i)
		go func(i int) {
			defer wg.Done()
			r.Get("id")
		}(i)
	}
	wg.Wait()
	text, ok := r.Get("id")
	require.True(t, ok)
	require.Equal(t, "text", text)
}
