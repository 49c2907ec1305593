package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Veraticus/work-order-flow/internal/model"
)

type fakeSource struct {
	docs    map[string]string
	listErr error
}

func (f *fakeSource) List(_ context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	urls := make([]string, 0, len(f.docs))
	for url := range f.docs {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls, nil
}

func (f *fakeSource) Fetch(_ context.Context, url string) (model.Document, error) {
	data, ok := f.docs[url]
	if !ok {
		return model.Document{}, fmt.Errorf("no such document %s", url)
	}
	return model.Document{Name: url, URL: url, Data: []byte(data)}, nil
}

// fakeReader answers with the text registered for a document URL.
type fakeReader struct {
	responses map[string]string
	errs      map[string]error
	mu        sync.Mutex
	calls     int
}

func (f *fakeReader) ExtractFields(_ context.Context, doc model.Document) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.errs[doc.URL]; ok {
		return "", err
	}
	return f.responses[doc.URL], nil
}

type fakeOracle struct {
	answer  func(prompt string) (string, error)
	prompts []string
	mu      sync.Mutex
}

func (f *fakeOracle) Categorize(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.answer(prompt)
}

func (f *fakeOracle) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}
