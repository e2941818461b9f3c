package attachment

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func TestAbsentAttachmentIsAdmitted(t *testing.T) {
	for _, mime := range []string{"", "application/zip", "image/png"} {
		got, err := ValidateAndNormalize("", mime)
		assert.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestDisallowedTypeIsRejected(t *testing.T) {
	tests := []struct {
		name string
		data string
		mime string
	}{
		{name: "zip", data: dataURI("application/zip", []byte("PK")), mime: "application/zip"},
		{name: "garbage payload", data: "!!!not base64!!!", mime: "application/zip"},
		{name: "missing type", data: dataURI("image/png", []byte{1, 2, 3}), mime: ""},
		{name: "html", data: dataURI("text/html", []byte("<p>")), mime: "text/html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAndNormalize(tt.data, tt.mime)
			assert.ErrorIs(t, err, ErrInvalidType)
			assert.Nil(t, got)
		})
	}
}

func TestLargePNGIsAdmitted(t *testing.T) {
	content := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 1024*1024)

	got, err := ValidateAndNormalize(dataURI("image/png", content), "image/png")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.True(t, strings.HasPrefix(got.DataURI, "data:image/png;base64,"))
	assert.Equal(t, len(content), got.Size)

	decoded, err := Decode(got.DataURI)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(content, decoded))
	assert.True(t, bytes.Equal(content, got.Bytes()))
}

func TestExactlyMaxSizeIsAdmitted(t *testing.T) {
	content := make([]byte, MaxSize)

	got, err := ValidateAndNormalize(dataURI("application/pdf", content), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, MaxSize, got.Size)
}

func TestOneByteOverMaxSizeIsRejected(t *testing.T) {
	content := make([]byte, MaxSize+1)

	got, err := ValidateAndNormalize(dataURI("application/pdf", content), "application/pdf")
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, "File size exceeds 5MB limit.", err.Error())
	assert.Nil(t, got)
}

func TestOversizedEncodingIsRejectedBeforeDecode(t *testing.T) {
	payload := strings.Repeat("A", MaxEncodedLength+4)

	_, err := ValidateAndNormalize("data:text/plain;base64,"+payload, "text/plain")
	assert.ErrorIs(t, err, ErrEncodedTooLarge)
}

func TestWhitespaceDoesNotCountTowardsEncodedLimit(t *testing.T) {
	content := []byte("quarterly renewal notes")
	encoded := base64.StdEncoding.EncodeToString(content)
	padded := strings.Join(strings.Split(encoded, ""), strings.Repeat(" ", 10))

	got, err := ValidateAndNormalize("data:text/plain;base64,"+padded+strings.Repeat("\n", MaxEncodedLength), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, dataURI("text/plain", content), got.DataURI)
}

func TestInvalidBase64IsRejected(t *testing.T) {
	_, err := ValidateAndNormalize("data:text/plain;base64,@@@@", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidData)
	assert.True(t, IsRejection(err))
}

func TestBarePayloadWithoutPrefix(t *testing.T) {
	content := []byte("plain text")

	got, err := ValidateAndNormalize(base64.StdEncoding.EncodeToString(content), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, dataURI("text/plain", content), got.DataURI)
}

func TestMissingPaddingIsCanonicalized(t *testing.T) {
	content := []byte("ab")

	got, err := ValidateAndNormalize("data:text/plain;base64,YWI", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "data:text/plain;base64,YWI=", got.DataURI)
	assert.Equal(t, content, got.Bytes())
}

func TestDeclaredTypeReplacesEmbeddedPrefix(t *testing.T) {
	content := []byte{0xff, 0xd8, 0xff}

	got, err := ValidateAndNormalize(dataURI("text/html", content), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.DataURI, "data:image/jpeg;base64,"))
	assert.Equal(t, "image/jpeg", got.MimeType)
}

func TestNormalizationIsIdempotent(t *testing.T) {
	inputs := []struct {
		data string
		mime string
	}{
		{data: "data:text/plain;base64, aGVs\nbG8= ", mime: "text/plain"},
		{data: dataURI("image/png", bytes.Repeat([]byte{7}, 4097)), mime: "image/png"},
		{data: "YWI", mime: "application/msword"},
	}
	for _, in := range inputs {
		first, err := ValidateAndNormalize(in.data, in.mime)
		require.NoError(t, err)
		second, err := ValidateAndNormalize(first.DataURI, in.mime)
		require.NoError(t, err)
		assert.Equal(t, first.DataURI, second.DataURI)
		assert.Equal(t, first.Size, second.Size)
	}
}

func TestAllowList(t *testing.T) {
	assert.Len(t, AllowedMimeTypes, 8)
	assert.True(t, IsAllowedMimeType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.False(t, IsAllowedMimeType("image/gif"))
	assert.Equal(t, 6991508, MaxEncodedLength)
}
