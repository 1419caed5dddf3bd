package capture

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emersion/go-mbox"
	gomail "github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMbox(t *testing.T, path string) []*gomail.Reader {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	var out []*gomail.Reader
	r := mbox.NewReader(f)
	for {
		msg, err := r.NextMessage()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(msg)
		require.NoError(t, err)
		mr, err := gomail.CreateReader(strings.NewReader(string(data)))
		require.NoError(t, err)
		out = append(out, mr)
	}
	return out
}

func TestAppendMbox(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captured.mbox")
	emails := []Email{
		{
			MessageID: "m1", ThreadID: "t1",
			From: "Jean <jean@example.com>", To: "ops@example.com",
			Subject: "Quotation", Date: "Tue, 3 Mar 2026 10:00:00 +0800",
			Body: "Hello Jean\nline two",
		},
		{MessageID: "m2", ThreadID: "t2", From: "not an address", Subject: "Second", Body: "b"},
	}

	require.NoError(t, AppendMbox(path, emails[:1]))
	require.NoError(t, AppendMbox(path, emails[1:]))

	msgs := readMbox(t, path)
	require.Len(t, msgs, 2)

	subject, err := msgs[0].Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Quotation", subject)
	assert.Equal(t, "t1", msgs[0].Header.Get("X-Gmail-Thread-Id"))

	part, err := msgs[0].NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(part.Body)
	require.NoError(t, err)
	assert.Equal(t, "Hello Jean\nline two", strings.ReplaceAll(string(body), "\r\n", "\n"))

	subject, err = msgs[1].Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Second", subject)
}
