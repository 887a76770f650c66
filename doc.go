/*
Package vsv decodes VSV (Versatile Separated Values), a line-oriented text
format in which any character can act as a field delimiter.

Every non-blank line of a VSV document is one of two kinds of row.

A header row starts with a doubled opening bracket, one of [[, ((, {{ or
<<. Each field is written between a doubled opening bracket and the
doubled closing bracket of the same shape, and everything outside the
brackets is ignored:

	[[name]] [[age]] [[city]]
	{{menu}}
	{{}}

A data row starts with its delimiter. The first character of the line is
used to split the rest of the line, and one trailing delimiter is
ignored:

	,Ann,34,Oslo
	;Bob;;Lyon;
	~onclick~OpenDoc()

Header lines without any bracketed field are comments and produce no row,
which makes lines such as "((free text" a convenient way to annotate a
document. Spaces are trimmed from both ends of a line before its newline
is removed, so indentation can be used to show structure while spaces
right before a newline stay part of the last field:

	{{menu}}
	  ~id~file
	  {{popup}}
	   ~value~New
	  {{;}}
	{{;}}

Decode accepts either the document text or, with AsFile, a file path:

	doc, err := vsv.Decode(",a,b,c\n{{menu}}")
	if err != nil {
		// handle error
	}
	for _, row := range doc.Rows {
		switch r := row.(type) {
		case *ast.Header:
			fmt.Println("header", r.Fields)
		case *ast.Data:
			fmt.Println("data", r.Fields)
		}
	}

For large inputs, NewDecoder reads one row at a time:

	dec := vsv.NewDecoder(f, vsv.StripCarriageReturn())
	for {
		row, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// handle error
		}
		// use row
	}

A source that cannot be opened or read, or that is not valid UTF-8,
aborts the whole decode with a *SourceError and an empty Document. Skipped
lines are reported through the OnSkip and WithLogger options and
Decoder.Skipped, without changing the decoded rows.

The decoder does not interpret rows further. Conventions such as using
{{}} and {{;}} to open and close nested objects are left to the caller.
*/
package vsv
