package prompts

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
)

// UploadSearch looks up upload sessions whose file name matches term.
type UploadSearch func(ctx context.Context, term string) ([]model.UploadSession, error)

// uploadPicker serves the select's options. Lookups are debounced while the
// operator types; a superseded lookup falls back to the last results.
type uploadPicker struct {
	ctx      context.Context
	search   UploadSearch
	debounce *query.Debouncer

	mu   sync.Mutex
	last []huh.Option[string]
	err  error
}

func (p *uploadPicker) options(term string) []huh.Option[string] {
	if !p.debounce.Wait(p.ctx) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.last
	}

	sessions, err := p.search(p.ctx, term)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.err = err
		return p.last
	}
	p.err = nil
	p.last = UploadOptions(sessions)
	return p.last
}

// UploadOptions labels each session with its file, status and progress.
func UploadOptions(sessions []model.UploadSession) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(sessions))
	for _, s := range sessions {
		label := fmt.Sprintf("%s  [%s %d%%]  %s", s.FileName, s.Status, s.Percent(), s.CreatedAt.Format("2006-01-02 15:04"))
		opts = append(opts, huh.NewOption(label, s.UploadID))
	}
	return opts
}

// PromptUpload lets the operator search uploads by file name and pick one.
func PromptUpload(ctx context.Context, title string, search UploadSearch) (string, error) {
	picker := &uploadPicker{
		ctx:      ctx,
		search:   search,
		debounce: query.NewDebouncer(query.DefaultDebounce),
	}

	var term, selected string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search uploads:").
				Placeholder("file name").
				Value(&term),
			huh.NewSelect[string]().
				Title(title).
				OptionsFunc(func() []huh.Option[string] {
					return picker.options(term)
				}, &term).
				Height(10).
				Value(&selected),
		),
	).Run()
	if err != nil {
		return "", err
	}

	picker.mu.Lock()
	searchErr := picker.err
	picker.mu.Unlock()
	if selected == "" {
		if searchErr != nil {
			return "", searchErr
		}
		return "", fmt.Errorf("no upload selected")
	}
	return selected, nil
}
