package uploads

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSlipStoresFileWithGeneratedName(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("fake image data")
	name, err := store.SaveSlip(42, "proof.PNG", bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "slip_42_"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	saved, err := os.ReadFile(store.Path(name))
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestSaveSlipRejectsUnsupportedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveSlip(1, "malware.exe", bytes.NewReader(nil), 10)
	assert.Equal(t, ErrUnsupportedType, err)
}

func TestSaveSlipRejectsOversizedFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveSlip(1, "big.pdf", bytes.NewReader(nil), MaxSlipSize+1)
	assert.Equal(t, ErrFileTooLarge, err)
}

func TestSaveBrandingAssetUsesPrefix(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.SaveBrandingAsset("logo", "company.ico", bytes.NewReader([]byte("icon")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "logo_"))
	assert.True(t, strings.HasSuffix(name, ".ico"))

	_, err = store.SaveBrandingAsset("favicon", "notes.pdf", bytes.NewReader(nil))
	assert.Equal(t, ErrUnsupportedType, err)
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.SaveSlip(1, "proof.jpg", bytes.NewReader([]byte("x")), 1)
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	require.NoError(t, store.Remove(name))
	require.NoError(t, store.Remove(""))

	_, err = os.Stat(store.Path(name))
	assert.True(t, os.IsNotExist(err))
}
