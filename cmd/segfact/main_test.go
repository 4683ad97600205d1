package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revelaction/segfact/batch"
	"github.com/revelaction/segfact/match"
	"github.com/revelaction/segfact/overlap"
	sent "github.com/revelaction/segfact/sentence"
)

const dogConllu = "1\tThe\tthe\tDET\tDT\t_\t2\tdet\t_\t_\n" +
	"2\tdog\tdog\tNOUN\tNN\t_\t3\tnsubj\t_\t_\n" +
	"3\tate\teat\tVERB\tVBD\tVerbForm=Fin\t0\troot\t_\t_\n" +
	"4\tthe\tthe\tDET\tDT\t_\t5\tdet\t_\t_\n" +
	"5\tbone\tbone\tNOUN\tNN\t_\t3\tobj\t_\tSpaceAfter=No\n" +
	"6\t.\t.\tPUNCT\t.\t_\t3\tpunct\t_\t_\n"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ui := UI{Out: &out, Err: &errOut}
	err := newApp(ui).Run(append([]string{"segfact"}, args...))
	return out.String(), errOut.String(), err
}

// importDogDoc imports the dog sentence as a doc of a new repository at repo.
func importDogDoc(t *testing.T, repo, title string) {
	t.Helper()
	src := filepath.Join(t.TempDir(), title+".conllu")
	if err := os.WriteFile(src, []byte(dogConllu), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "import-doc", "--to", repo, src); err != nil {
		t.Fatalf("import failed: %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(out, "segfact version dev") {
		t.Errorf("expected version line, got %q", out)
	}
}

func TestImportAndList(t *testing.T) {
	for _, repo := range []string{filepath.Join(t.TempDir(), "docs"), filepath.Join(t.TempDir(), "docs.db")} {
		importDogDoc(t, repo, "dog")

		out, _, err := run(t, "-d", repo, "ls-doc")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", repo, err)
		}

		if !strings.Contains(out, "dog") {
			t.Errorf("%s: expected the dog doc, got %q", repo, out)
		}
	}
}

func TestDocAndSentence(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "docs")
	importDogDoc(t, repo, "dog")

	out, _, err := run(t, "-d", repo, "doc", "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "✍  0 The dog ate the bone.\n" {
		t.Errorf("expected the sentence text, got %q", out)
	}

	if _, _, err := run(t, "-d", repo, "sentence", "0", "3"); err == nil {
		t.Errorf("expected out of bounds error")
	}
}

func TestRelationsJSON(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "docs")
	importDogDoc(t, repo, "dog")

	out, _, err := run(t, "-d", repo, "relations", "--json", "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got struct {
		VSO [][]string `json:"vso"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("failed to unmarshal %q: %v", out, err)
	}

	if len(got.VSO) != 1 || strings.Join(got.VSO[0], " ") != "eat dog bone" {
		t.Errorf("expected [[eat dog bone]], got %v", got.VSO)
	}
}

func TestOverlapStore(t *testing.T) {
	dir := t.TempDir()
	repo := filepath.Join(dir, "docs.db")
	importDogDoc(t, repo, "a")
	importDogDoc(t, repo, "b")

	reports := filepath.Join(dir, "reports")
	out, _, err := run(t, "-d", repo, "--report-path", reports, "overlap", "--json", "--store", "1", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var m map[string]int
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("failed to unmarshal %q: %v", out, err)
	}
	if m[overlap.KeyVSOInd] != 1 {
		t.Errorf("expected vso overlap, got %v", m)
	}

	if _, err := os.Stat(filepath.Join(reports, "1-2.json")); err != nil {
		t.Errorf("expected stored report: %v", err)
	}
}

func TestFind(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "docs")
	importDogDoc(t, repo, "dog")

	out, _, err := run(t, "-d", repo, "find", "--no-prefix", "--format", "lemma", "eat|bite", "_", "bone")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "eat dog bone\n" {
		t.Errorf("expected the vso tuple, got %q", out)
	}
}

func TestFindInDoc(t *testing.T) {
	repo := filepath.Join(t.TempDir(), "docs")
	importDogDoc(t, repo, "dog")

	out, _, err := run(t, "-d", repo, "find", "--doc", "0", "--json", "eat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []match.TupleMatch
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("failed to unmarshal %q: %v", out, err)
	}
	if len(got) != 2 || got[0].Kind != match.KindVS || got[1].Kind != match.KindVO {
		t.Errorf("expected vs and vo tuples of doc 0, got %+v", got)
	}

	if _, _, err := run(t, "-d", repo, "find", "--doc", "-1", "eat"); err == nil {
		t.Errorf("expected error for a negative doc id")
	}
}

func TestOverlapStoreNeedsIds(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "--report-path", filepath.Join(dir, "reports"), "overlap", "--store", "a.json", "b.json")
	if err == nil || !strings.Contains(err.Error(), "doc ids") {
		t.Errorf("expected doc ids error, got %v", err)
	}

	t.Setenv("SEGFACT_REPORT_PATH", "")
	_, _, err = run(t, "overlap", "--store", "1", "2")
	if err == nil || !strings.Contains(err.Error(), "--report-path") {
		t.Errorf("expected missing report path error, got %v", err)
	}
}

func TestPairs(t *testing.T) {
	sentences, err := sent.ReadCoNLLU(strings.NewReader(dogConllu))
	if err != nil {
		t.Fatal(err)
	}
	good := [][]sent.Token{sentences[0].Tokens}
	bad := [][]sent.Token{{{Id: 0, Head: 4, Text: "x", Dep: "ROOT"}}}

	var in bytes.Buffer
	for _, p := range []batch.Pair{
		{Id: "ok", Reference: good, Distractor: good},
		{Id: "ko", Reference: good, Distractor: bad},
	} {
		line, _ := json.Marshal(p)
		in.Write(append(line, '\n'))
	}

	path := filepath.Join(t.TempDir(), "pairs.jsonl")
	if err := os.WriteFile(path, in.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	out, errOut, err := run(t, "pairs", "-w", "2", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 result lines, got %q", out)
	}

	var first, second batch.Result
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}

	if first.Id != "ok" || first.Report == nil || first.Report.VSO != 1 {
		t.Errorf("expected scored pair ok, got %+v", first)
	}

	if second.Id != "ko" || second.Error == "" {
		t.Errorf("expected failed pair ko, got %+v", second)
	}

	if !strings.Contains(errOut, "1 of 2 pairs failed") {
		t.Errorf("expected failure summary, got %q", errOut)
	}

	if _, _, err := run(t, "pairs", "--fail-fast", path); err == nil {
		t.Errorf("expected fail fast error")
	}
}

func TestFprintErrSentence(t *testing.T) {
	var buf bytes.Buffer
	_, err := overlap.Compare(nil, [][]sent.Token{{{Id: 0, Head: 3, Text: "x", Lemma: "x", Dep: "ROOT"}}}, false)
	fprintErr(&buf, err)

	out := buf.String()
	if !strings.HasPrefix(out, "segfact: distractor sentence 0") || !strings.Contains(out, `"x"`) {
		t.Errorf("expected the error and the raw tokens, got %q", out)
	}
}

func TestFprintErrMatchSentence(t *testing.T) {
	var buf bytes.Buffer
	p, _ := match.Parse([]string{"_"})
	_, err := match.NewMatcher(p).MatchSentence(sent.Sentence{Id: 1, DocId: 5, Tokens: []sent.Token{{Id: 0, Head: 2, Text: "y", Lemma: "y", Dep: "ROOT"}}})
	fprintErr(&buf, err)

	out := buf.String()
	if !strings.HasPrefix(out, "segfact: doc 5 sentence 1") || !strings.Contains(out, `"y"`) {
		t.Errorf("expected the error and the raw tokens, got %q", out)
	}
}

func TestMissingDocPath(t *testing.T) {
	t.Setenv("SEGFACT_DOC_PATH", "")
	if _, _, err := run(t, "ls-doc"); err == nil || !strings.Contains(err.Error(), "--doc-path") {
		t.Errorf("expected missing doc path error, got %v", err)
	}
}
