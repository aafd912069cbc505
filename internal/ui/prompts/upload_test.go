package prompts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/query"
)

func TestUploadPickerOptions(t *testing.T) {
	var terms []string
	picker := &uploadPicker{
		ctx: context.Background(),
		search: func(_ context.Context, term string) ([]model.UploadSession, error) {
			terms = append(terms, term)
			return []model.UploadSession{
				{UploadID: "u1", FileName: "march.xlsx", Status: model.UploadProcessing, TotalRows: 4, ProcessedRows: 1},
			}, nil
		},
		debounce: query.NewDebouncer(time.Millisecond),
	}

	opts := picker.options("mar")
	if len(opts) != 1 || opts[0].Value != "u1" {
		t.Fatalf("options = %+v", opts)
	}
	if len(terms) != 1 || terms[0] != "mar" {
		t.Errorf("searched %v", terms)
	}
}

func TestUploadPickerKeepsLastResults(t *testing.T) {
	fail := false
	picker := &uploadPicker{
		search: func(context.Context, string) ([]model.UploadSession, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return []model.UploadSession{{UploadID: "u1", FileName: "a.xlsx"}}, nil
		},
		debounce: query.NewDebouncer(time.Millisecond),
	}
	picker.ctx = context.Background()

	if got := picker.options("a"); len(got) != 1 {
		t.Fatalf("first lookup = %+v", got)
	}

	fail = true
	if got := picker.options("ab"); len(got) != 1 || got[0].Value != "u1" {
		t.Errorf("failed lookup should keep previous options, got %+v", got)
	}
	if picker.err == nil {
		t.Error("search error not recorded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	picker.ctx = ctx
	if got := picker.options("abc"); len(got) != 1 {
		t.Errorf("cancelled lookup should keep previous options, got %+v", got)
	}
}
