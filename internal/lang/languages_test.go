package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		path string
		want Dialect
		ok   bool
	}{
		{"src/Foo.java", Java, true},
		{"src/Foo.JAVA", Java, true},
		{"src/foo.kt", Kotlin, true},
		{"build.gradle.kts", Kotlin, true},
		{"main.go", "", false},
		{"README", "", false},
	}
	for _, tt := range tests {
		got, ok := ForFile(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()
	d, ok := Lookup(" Kotlin ")
	require.True(t, ok)
	assert.Equal(t, Kotlin, d)

	_, ok = Lookup("scala")
	assert.False(t, ok)
}

func TestAll(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []Dialect{Java, Kotlin}, All())
}

func TestParse(t *testing.T) {
	t.Parallel()
	tree, err := Parse(context.Background(), Java, []byte("class Foo {}"))
	require.NoError(t, err)
	defer tree.Close()
	assert.Equal(t, "program", tree.RootNode().Type())

	tree, err = Parse(context.Background(), Kotlin, []byte("class Foo"))
	require.NoError(t, err)
	defer tree.Close()
	assert.Equal(t, "source_file", tree.RootNode().Type())

	_, err = Parse(context.Background(), Dialect("cobol"), nil)
	assert.Error(t, err)
}
