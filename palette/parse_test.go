package palette

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#000000", Color{0, 0, 0}, false},
		{"#FFFFFF", Color{255, 255, 255}, false},
		{"#fbf1c7", Color{0xfb, 0xf1, 0xc7}, false},
		{"#0aB0c0", Color{0x0a, 0xb0, 0xc0}, false},
		{"00FF00", Color{}, true},
		{"#00FF0", Color{}, true},
		{"#00FF000", Color{}, true},
		{"#fff", Color{}, true},
		{"#00GG00", Color{}, true},
		{"#+1+1+1", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseHex(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseHex(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseHex(%q)", tt.in)
		assert.Equal(t, strings.ToLower(tt.in), got.Hex())
	}
}

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader("#282828\n  #EBDBB2  \n\n#cc241d\r\n"))
	require.NoError(t, err)
	assert.Equal(t, Palette{{0x28, 0x28, 0x28}, {0xeb, 0xdb, 0xb2}, {0xcc, 0x24, 0x1d}}, p)
}

func TestParseMissingHash(t *testing.T) {
	_, err := Parse(strings.NewReader("#000000\n00FF00\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedEntry)

	var entryErr *EntryError
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, 2, entryErr.Line)
	assert.Equal(t, "00FF00", entryErr.Text)
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "\n\n", "   \n"} {
		p, err := Parse(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrEmpty, "Parse(%q)", in)
		assert.Nil(t, p)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParseReadFailure(t *testing.T) {
	_, err := Parse(failingReader{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("#000000\n#ffffff\n"), 0644))
	p, err := Load(good)
	require.NoError(t, err)
	assert.Equal(t, Palette{black, white}, p)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("#000000\nwhite\n"), 0644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrMalformedEntry)
	assert.ErrorContains(t, err, bad)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParseList(t *testing.T) {
	p, err := ParseList("#ff0000 0,255,0 128 navy")
	require.NoError(t, err)
	assert.Equal(t, Palette{
		{255, 0, 0},
		{0, 255, 0},
		{128, 128, 128},
		{0, 0, 128},
	}, p)

	for _, in := range []string{"300", "-1", "1,2", "1,2,300", "#12", "notacolor"} {
		_, err := ParseList(in)
		assert.ErrorIs(t, err, ErrMalformedEntry, "ParseList(%q)", in)
	}

	_, err = ParseList("   ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestBuiltins(t *testing.T) {
	names := Names()
	assert.Contains(t, names, DefaultName)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		assert.True(t, IsBuiltin(name))
		p, err := Builtin(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, p, name)
	}

	_, err := Builtin("does-not-exist")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, IsBuiltin("does-not-exist"))
}

func TestResolve(t *testing.T) {
	def, err := Resolve("")
	require.NoError(t, err)
	want, err := Builtin(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, want, def)

	bw, err := Resolve("bw")
	require.NoError(t, err)
	assert.Equal(t, Palette{black, white}, bw)

	path := filepath.Join(t.TempDir(), "custom.txt")
	require.NoError(t, os.WriteFile(path, []byte("#123456\n"), 0644))
	custom, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, Palette{{0x12, 0x34, 0x56}}, custom)

	_, err = Resolve(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
