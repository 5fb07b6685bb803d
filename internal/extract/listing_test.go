// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing test document: %v", err)
	}
	return doc
}

func testBase(t *testing.T) *url.URL {
	t.Helper()
	base, err := url.Parse("https://conf.example.com/")
	if err != nil {
		t.Fatal(err)
	}
	return base
}

const listingHTML = `<html><body><dl>
<dt class="ptitle"><a href="/content/paper_one.html">Learning to Test</a>
  [<a href="/papers/paper_one.pdf">pdf</a>]
  [<a href="/supplemental/paper_one_supp.zip">supp</a>]</dt>
<dd><a href="/author/smith">A. Smith</a>, <a href="/author/lee">B. Lee</a></dd>
<dt class="ptitle"><a href="/content/paper_two.html">Titles Without Details</a></dt>
<dt class="ptitle">Plain Text Title</dt>
</dl></body></html>`

func TestListing(t *testing.T) {
	doc := parseDoc(t, listingHTML)
	entries := Listing(doc, testBase(t), 0, zerolog.Nop())

	if len(entries) != 3 {
		t.Fatalf("Listing returned %d entries, want 3", len(entries))
	}

	first := entries[0]
	if first.Record.Title != "Learning to Test" {
		t.Errorf("title = %q, want %q", first.Record.Title, "Learning to Test")
	}
	if first.DetailURL != "https://conf.example.com/content/paper_one.html" {
		t.Errorf("detail URL = %q", first.DetailURL)
	}
	wantAuthors := []string{"A. Smith", "B. Lee"}
	if !reflect.DeepEqual(first.Record.Authors, wantAuthors) {
		t.Errorf("authors = %v, want %v", first.Record.Authors, wantAuthors)
	}
	if first.Record.PDFURL != "https://conf.example.com/papers/paper_one.pdf" {
		t.Errorf("pdf URL = %q", first.Record.PDFURL)
	}
	if first.Record.SupplementaryURL != "https://conf.example.com/supplemental/paper_one_supp.zip" {
		t.Errorf("supplementary URL = %q", first.Record.SupplementaryURL)
	}

	// A title node with no following detail node still yields one record
	// with no authors and no links.
	second := entries[1]
	if second.Record.Title != "Titles Without Details" {
		t.Errorf("title = %q", second.Record.Title)
	}
	if len(second.Record.Authors) != 0 || second.Record.PDFURL != "" || second.Record.SupplementaryURL != "" {
		t.Errorf("bare title produced non-empty fields: %+v", second.Record)
	}

	// A linkless title uses the node's own text and has no detail URL.
	third := entries[2]
	if third.Record.Title != "Plain Text Title" {
		t.Errorf("title = %q", third.Record.Title)
	}
	if third.DetailURL != "" {
		t.Errorf("detail URL = %q, want empty", third.DetailURL)
	}
}

func TestListingCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><dl>")
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&b, `<dt><a href="/content/p%d.html">Paper %d</a></dt><dd><a href="/a%d">Author %d</a></dd>`, i, i, i, i)
	}
	b.WriteString("</dl></body></html>")

	doc := parseDoc(t, b.String())
	entries := Listing(doc, testBase(t), 100, zerolog.Nop())

	if len(entries) != 100 {
		t.Fatalf("Listing returned %d entries, want exactly 100", len(entries))
	}
	if entries[99].Record.Title != "Paper 99" {
		t.Errorf("last record = %q, want %q", entries[99].Record.Title, "Paper 99")
	}
	for _, e := range entries {
		if e.Record.Title == "" {
			t.Fatal("emitted record with empty title")
		}
	}
}

// Every anchor inside the detail node counts as an author, including
// non-name links that happen to share the node. Pinned so a change here
// is deliberate.
func TestListingAllDetailLinksAreAuthors(t *testing.T) {
	html := `<dl><dt><a href="/p.html">Paper</a></dt>
		<dd><a>A. Smith</a> [<a href="/papers/p.pdf">pdf</a>]</dd></dl>`
	entries := Listing(parseDoc(t, html), testBase(t), 0, zerolog.Nop())
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	want := []string{"A. Smith", "pdf"}
	if !reflect.DeepEqual(entries[0].Record.Authors, want) {
		t.Errorf("authors = %v, want %v", entries[0].Record.Authors, want)
	}
	if entries[0].Record.PDFURL != "https://conf.example.com/papers/p.pdf" {
		t.Errorf("pdf URL = %q", entries[0].Record.PDFURL)
	}
}

func TestListingSkipsEmptyTitles(t *testing.T) {
	html := `<dl>
		<dt><a href="/x.html">   </a></dt><dd><a>Someone</a></dd>
		<dt></dt>
		<dt>Real Paper</dt>
	</dl>`
	entries := Listing(parseDoc(t, html), testBase(t), 0, zerolog.Nop())
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Record.Title != "Real Paper" {
		t.Errorf("title = %q", entries[0].Record.Title)
	}
}

func TestExtractAuthorsFallback(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			"links in document order",
			`<dd><a>A. Smith</a>, <a>B. Lee</a>, <a>A. Smith</a></dd>`,
			[]string{"A. Smith", "B. Lee", "A. Smith"},
		},
		{
			"plain text with label",
			`<dd>Authors: Jane Doe, John Roe</dd>`,
			[]string{"Jane Doe", "John Roe"},
		},
		{
			"plain text by label",
			`<dd>By: Solo Author</dd>`,
			[]string{"Solo Author"},
		},
		{
			"plain text no label",
			`<dd>First Person, Second Person</dd>`,
			[]string{"First Person", "Second Person"},
		},
		{
			// Comma-splitting misreads "Last, First" names. Known
			// limitation of the plain-text fallback.
			"last-first format splits",
			`<dd>Doe, Jane</dd>`,
			[]string{"Doe", "Jane"},
		},
		{
			"empty detail",
			`<dd>   </dd>`,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			got := extractAuthors(doc.Find("dd"))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractAuthors = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstLink(t *testing.T) {
	html := `<div>
		<a href="/one.html">html</a>
		<a href="/papers/a.pdf">first pdf</a>
		<a href="/papers/b.pdf">second pdf</a>
		<a href="/SUPPLEMENTARY/a.zip">supp</a>
	</div>`
	doc := parseDoc(t, html)
	sel := doc.Find("div")

	if got := firstLink(sel, pdfRe); got != "/papers/a.pdf" {
		t.Errorf("pdf link = %q, want the first match", got)
	}
	if got := firstLink(sel, suppRe); got != "/SUPPLEMENTARY/a.zip" {
		t.Errorf("supplementary link = %q", got)
	}
	if got := firstLink(doc.Find("span"), pdfRe); got != "" {
		t.Errorf("empty selection returned %q", got)
	}
}
