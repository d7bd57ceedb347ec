package sanitize_test

import (
	"strings"
	"testing"

	"github.com/msomdec/quill-blog/internal/sanitize"
)

func TestHTML_KeepsAllowedMarkup(t *testing.T) {
	in := `<h2>Title</h2><p>Some <b>bold</b> and <em>em</em> text.</p><ul><li>one</li></ul>`
	if got := sanitize.HTML(in); got != in {
		t.Fatalf("expected allowed markup unchanged\n got: %s\nwant: %s", got, in)
	}
}

func TestHTML_DisallowedTagKeepsText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		tag   string
		text  string
		wants string
	}{
		{"section", `<section>hello world</section>`, "<section", "hello world", "hello world"},
		{"font inside p", `<p>keep <font color="red">this</font></p>`, "<font", "this", "<p>keep this</p>"},
		{"marquee", `<marquee>scrolling</marquee>`, "<marquee", "scrolling", "scrolling"},
		{"article", `<article><p>body</p></article>`, "<article", "body", "<p>body</p>"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitize.HTML(tc.in)
			if strings.Contains(got, tc.tag) {
				t.Fatalf("expected %s to be removed, got %q", tc.tag, got)
			}
			if !strings.Contains(got, tc.text) {
				t.Fatalf("expected inner text %q to be kept, got %q", tc.text, got)
			}
			if got != tc.wants {
				t.Fatalf("expected %q, got %q", tc.wants, got)
			}
		})
	}
}

func TestHTML_ScriptKeepsText(t *testing.T) {
	got := sanitize.HTML(`<p>hi</p><script>alert("x")</script>`)
	if strings.Contains(got, "<script") {
		t.Fatalf("expected script tag removed, got %q", got)
	}
	want := `<p>hi</p>alert(&#34;x&#34;)`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestHTML_ContentElementsKeepText(t *testing.T) {
	tags := []string{
		"script", "style", "iframe", "title", "object", "noscript",
		"noembed", "noframes", "font", "center", "textarea",
	}

	for _, tag := range tags {
		t.Run(tag, func(t *testing.T) {
			got := sanitize.HTML("<" + tag + ">hello</" + tag + ">")
			if got != "hello" {
				t.Fatalf("expected %q, got %q", "hello", got)
			}
		})
	}
}

func TestHTML_RawTextIsEscaped(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"markup in script", `<script><b>x</b></script>`, "&lt;b&gt;x&lt;/b&gt;"},
		{"markup in iframe", `<iframe><img src=x onerror=y></iframe>`, "&lt;img src=x onerror=y&gt;"},
		{"uppercase script", `<SCRIPT>a < b</SCRIPT>`, "a &lt; b"},
		{"self-closing script", `<script/>tail`, "tail"},
		{"unclosed script", `<p>x</p><script>rest`, "<p>x</p>rest"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitize.HTML(tc.in)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHTML_StripsDisallowedAttributes(t *testing.T) {
	got := sanitize.HTML(`<p onclick="steal()" class="x">text</p>`)
	if got != "<p>text</p>" {
		t.Fatalf("expected attributes stripped, got %q", got)
	}

	got = sanitize.HTML(`<a href="https://example.com" target="_blank" rel="opener" onclick="x()">go</a>`)
	want := `<a href="https://example.com" target="_blank">go</a>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	got = sanitize.HTML(`<img src="https://example.com/a.png" alt="a" onerror="x()">`)
	if strings.Contains(got, "onerror") {
		t.Fatalf("expected onerror stripped, got %q", got)
	}
	if !strings.Contains(got, `src="https://example.com/a.png"`) || !strings.Contains(got, `alt="a"`) {
		t.Fatalf("expected src and alt kept, got %q", got)
	}
}

func TestHTML_RejectsScriptURLs(t *testing.T) {
	got := sanitize.HTML(`<a href="javascript:alert(1)">click</a>`)
	if strings.Contains(got, "javascript") {
		t.Fatalf("expected javascript URL removed, got %q", got)
	}
	if got != "click" {
		t.Fatalf("expected bare link text, got %q", got)
	}
}

func TestHTML_Idempotent(t *testing.T) {
	inputs := []string{
		`<p>plain</p>`,
		`<p onclick="x">a &amp; b 'quoted' "double"</p>`,
		`<section><h1>Head</h1><font>t</font></section>`,
		`<a href="/post/1" title="one">rel</a><a>no href</a>`,
		`<img src="https://example.com/x.png" width="10" height="20">`,
		`<table><tbody><tr><td>cell</td></tr></tbody></table><style>p{}</style>`,
		`unclosed <b>bold <i>italic`,
		`<script>if (a < b && c) { alert("x") }</script>`,
		`<iframe><b>x</b></iframe><title>t &amp; u</title>`,
		`5 < 6 > 4`,
	}

	for _, in := range inputs {
		once := sanitize.HTML(in)
		twice := sanitize.HTML(once)
		if once != twice {
			t.Fatalf("not idempotent for %q\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestText(t *testing.T) {
	got := sanitize.Text(`<b>Hello</b> <script>x</script>there`)
	if got != "Hello there" {
		t.Fatalf("expected %q, got %q", "Hello there", got)
	}
}
