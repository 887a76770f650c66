package vsv_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/ForrSiis/vsv"
	"github.com/ForrSiis/vsv/ast"
	"github.com/ForrSiis/vsv/internal/testutil"
)

func TestDecode(t *testing.T) {
	t.Run("Empty Input", func(t *testing.T) {
		doc, err := vsv.Decode("")
		require.NoError(t, err)
		require.Empty(t, doc.Rows)
	})

	t.Run("Spaces Only", func(t *testing.T) {
		doc, err := vsv.Decode("     ")
		require.NoError(t, err)
		require.Empty(t, doc.Rows)
	})

	t.Run("Single Header", func(t *testing.T) {
		doc, err := vsv.Decode("{{menu}}")
		require.NoError(t, err)
		require.Equal(t, []ast.Row{&ast.Header{Fields: []string{"menu"}, Line: 1}}, doc.Rows)
	})

	t.Run("Empty Header Field", func(t *testing.T) {
		doc, err := vsv.Decode("{{}}")
		require.NoError(t, err)
		require.Equal(t, []ast.Row{&ast.Header{Fields: []string{""}, Line: 1}}, doc.Rows)
	})

	t.Run("Unclosed Header Is A Comment", func(t *testing.T) {
		doc, err := vsv.Decode("((no closing brackets anywhere")
		require.NoError(t, err)
		require.Empty(t, doc.Rows)
	})

	t.Run("Data Row", func(t *testing.T) {
		doc, err := vsv.Decode(",a,b,c")
		require.NoError(t, err)
		require.Equal(t, []ast.Row{&ast.Data{Fields: []string{"a", "b", "c"}, Delimiter: ',', Line: 1}}, doc.Rows)
	})

	t.Run("Trailing Delimiter", func(t *testing.T) {
		with, err := vsv.Decode(",a,b,c,")
		require.NoError(t, err)
		without, err := vsv.Decode(",a,b,c")
		require.NoError(t, err)
		require.Equal(t, without, with)
	})

	t.Run("Only One Trailing Delimiter Is Stripped", func(t *testing.T) {
		doc, err := vsv.Decode(",a,b,c,,")
		require.NoError(t, err)
		require.Equal(t, [][]string{{"data", "a", "b", "c", ""}}, doc.Lists())
	})

	t.Run("Spaces Before Newline Are Kept", func(t *testing.T) {
		doc, err := vsv.Decode(",a,b, \n~x~y \n")
		require.NoError(t, err)
		require.Equal(t, [][]string{
			{"data", "a", "b", " "},
			{"data", "x", "y "},
		}, doc.Lists())
	})

	t.Run("Spaces At End Of Input Are Trimmed", func(t *testing.T) {
		doc, err := vsv.Decode("  ,a,b,  ")
		require.NoError(t, err)
		require.Equal(t, [][]string{{"data", "a", "b"}}, doc.Lists())
	})

	t.Run("Lone Delimiter", func(t *testing.T) {
		doc, err := vsv.Decode("  ;  ")
		require.NoError(t, err)
		require.Equal(t, [][]string{{"data", ""}}, doc.Lists())
	})
}

func TestDecode_SourceOrder(t *testing.T) {
	input := `
[[name]] [[age]]

,Ann,34
((a comment between rows
;Bob;41;
`
	doc, err := vsv.Decode(input)
	require.NoError(t, err)
	require.Equal(t, []ast.Row{
		&ast.Header{Fields: []string{"name", "age"}, Line: 2},
		&ast.Data{Fields: []string{"Ann", "34"}, Delimiter: ',', Line: 4},
		&ast.Data{Fields: []string{"Bob", "41"}, Delimiter: ';', Line: 6},
	}, doc.Rows)
}

func TestDecode_Menu(t *testing.T) {
	doc, err := vsv.Decode(testutil.MustRead(t, "menu.vsv"))
	require.NoError(t, err)

	expected := [][]string{
		{"header", ""},
		{"header", "menu"},
		{"data", "id", "file"},
		{"data", "value", "File"},
		{"header", "popup"},
		{"header", "menuitem"},
		{"header", ""},
		{"data", "value", "New"},
		{"data", "onclick", "CreateNewDoc()"},
		{"header", ";"},
		{"header", ""},
		{"data", "value", "Open"},
		{"data", "onclick", "OpenDoc()"},
		{"header", ";"},
		{"header", ""},
		{"data", "value", "Close"},
		{"data", "onclick", "CloseDoc()"},
		{"header", ";"},
		{"header", ";"},
		{"header", ";"},
		{"header", ";"},
		{"header", ";"},
	}
	require.Equal(t, expected, doc.Lists())
	require.Equal(t, 4, doc.Rows[0].Pos())
}

func TestDecode_Deterministic(t *testing.T) {
	src := testutil.MustRead(t, "names.vsv")
	first, err := vsv.Decode(src)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := vsv.Decode(src)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.vsv")
	require.NoError(t, os.WriteFile(path, []byte(testutil.MustRead(t, "names.vsv")), 0o644))

	doc, err := vsv.DecodeFile(path)
	require.NoError(t, err)
	require.Equal(t, 5, doc.Len())

	viaOption, err := vsv.Decode(path, vsv.AsFile())
	require.NoError(t, err)
	require.Equal(t, doc, viaOption)

	// Without AsFile the path itself is decoded as a data row.
	literal, err := vsv.Decode(path)
	require.NoError(t, err)
	require.Equal(t, ast.DataRow, literal.Rows[0].Kind())
}

func TestDecode_Options(t *testing.T) {
	t.Run("Carriage Return Kept By Default", func(t *testing.T) {
		doc, err := vsv.Decode(testutil.MustRead(t, "crlf.vsv"))
		require.NoError(t, err)
		require.Equal(t, []ast.Row{
			&ast.Header{Fields: []string{"menu"}, Line: 1},
			&ast.Data{Fields: []string{"a", "b", "\r"}, Delimiter: ',', Line: 2},
			&ast.Data{Fields: []string{""}, Delimiter: '\r', Line: 3},
		}, doc.Rows)
	})

	t.Run("StripCarriageReturn", func(t *testing.T) {
		doc, err := vsv.Decode(testutil.MustRead(t, "crlf.vsv"), vsv.StripCarriageReturn())
		require.NoError(t, err)
		require.Equal(t, [][]string{
			{"header", "menu"},
			{"data", "a", "b"},
		}, doc.Lists())
	})

	t.Run("UnescapeEntities", func(t *testing.T) {
		input := "&lt;&lt;b&gt;&gt;\n,fish &amp; chips,"
		doc, err := vsv.Decode(input, vsv.UnescapeEntities())
		require.NoError(t, err)
		require.Equal(t, [][]string{
			{"header", "b"},
			{"data", "fish & chips"},
		}, doc.Lists())
	})

	t.Run("LooseBrackets", func(t *testing.T) {
		doc, err := vsv.Decode("{{a]] ((b>>", vsv.LooseBrackets())
		require.NoError(t, err)
		require.Equal(t, [][]string{{"header", "a", "b"}}, doc.Lists())

		doc, err = vsv.Decode("{{a]] ((b>>")
		require.NoError(t, err)
		require.Empty(t, doc.Rows)
	})

	t.Run("Charset", func(t *testing.T) {
		doc, err := vsv.Decode("{{caf\xe9}}\n,na\xefve", vsv.Charset("latin1"))
		require.NoError(t, err)
		require.Equal(t, [][]string{
			{"header", "café"},
			{"data", "naïve"},
		}, doc.Lists())
	})

	t.Run("Charset Byte Order Mark", func(t *testing.T) {
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		src, err := enc.String("{{menu}}\n~id~file\n")
		require.NoError(t, err)

		doc, err := vsv.Decode(src, vsv.Charset("utf-8"))
		require.NoError(t, err)
		require.Equal(t, [][]string{
			{"header", "menu"},
			{"data", "id", "file"},
		}, doc.Lists())
	})

	t.Run("Unknown Charset", func(t *testing.T) {
		doc, err := vsv.Decode(",a", vsv.Charset("no-such-charset"))
		require.Error(t, err)
		require.Contains(t, err.Error(), `vsv: unknown charset "no-such-charset"`)
		require.Empty(t, doc.Rows)
	})

	t.Run("Nil Logger", func(t *testing.T) {
		_, err := vsv.Decode(",a", vsv.WithLogger(nil))
		require.EqualError(t, err, "vsv: logger must not be nil")
	})

	t.Run("Nil Skip Callback", func(t *testing.T) {
		_, err := vsv.Decode(",a", vsv.OnSkip(nil))
		require.EqualError(t, err, "vsv: skip callback must not be nil")
	})
}

func TestDecode_Diagnostics(t *testing.T) {
	input := "\n((comment\n,a\n   \n{{h}}"

	var skipped []vsv.SkippedLine
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	doc, err := vsv.Decode(input,
		vsv.OnSkip(func(s vsv.SkippedLine) { skipped = append(skipped, s) }),
		vsv.WithLogger(logger),
	)
	require.NoError(t, err)

	// Diagnostics never change the decoded rows.
	plain, err := vsv.Decode(input)
	require.NoError(t, err)
	require.Equal(t, plain, doc)

	require.Equal(t, []vsv.SkippedLine{
		{Line: 1, Reason: vsv.SkipBlank, Text: ""},
		{Line: 2, Reason: vsv.SkipComment, Text: "((comment"},
		{Line: 4, Reason: vsv.SkipBlank, Text: ""},
	}, skipped)
	require.Contains(t, logs.String(), "reason=comment")
	require.Contains(t, logs.String(), "line=2")
	require.Equal(t, "blank", vsv.SkipBlank.String())
	require.Equal(t, "SkipReason(0)", vsv.SkipReason(0).String())
}

func TestDecoder_Next(t *testing.T) {
	dec := vsv.NewDecoder(strings.NewReader("((title\n{{a}}\n\n,1,2\n"))

	row, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, &ast.Header{Fields: []string{"a"}, Line: 2}, row)

	row, err = dec.Next()
	require.NoError(t, err)
	require.Equal(t, &ast.Data{Fields: []string{"1", "2"}, Delimiter: ',', Line: 4}, row)

	_, err = dec.Next()
	require.ErrorIs(t, err, io.EOF)
	_, err = dec.Next()
	require.ErrorIs(t, err, io.EOF)

	require.Equal(t, []vsv.SkippedLine{
		{Line: 1, Reason: vsv.SkipComment, Text: "((title"},
		{Line: 3, Reason: vsv.SkipBlank, Text: ""},
	}, dec.Skipped())
}

func TestDecoder_Decode(t *testing.T) {
	dec := vsv.NewDecoder(strings.NewReader(testutil.MustRead(t, "playlist.vsv")))
	doc, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"header", "playlist", "title"},
		{"data", "Morning"},
		{"data", "01", "Sunrise.mp3", "3:21"},
		{"data", "02", "Coffee.mp3", "4:05"},
		{"header", "playlist", "title"},
		{"data", "Evening"},
		{"data", "01", "Dusk.mp3", "5:12"},
	}, doc.Lists())
	require.Empty(t, dec.Skipped())
}
