package rows

import (
	"strings"

	"github.com/hance08/payops/internal/api"
	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/service"
	"github.com/spf13/cobra"
)

// QueryFlags selects the table page a command works on.
type QueryFlags struct {
	Page     int
	Limit    int
	Status   string
	Search   string
	UploadID string
	Gateway  string
	Sort     string
	Desc     bool
	Filter   string
}

var queryFlagNames = []string{"page", "limit", "status", "search", "upload", "gateway", "sort", "desc"}

func (f *QueryFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&f.Limit, "limit", "l", 0, "rows per page (default from config)")
	cmd.Flags().StringVarP(&f.Status, "status", "s", "", "only rows with this charge status")
	cmd.Flags().StringVar(&f.Search, "search", "", "server-side search on guest, reservation and ids")
	cmd.Flags().StringVarP(&f.UploadID, "upload", "u", "", "only rows from this upload")
	cmd.Flags().StringVarP(&f.Gateway, "gateway", "g", "", "only rows of this gateway: paypal or stripe")
	cmd.Flags().StringVar(&f.Sort, "sort", "", "sort by this column")
	cmd.Flags().BoolVar(&f.Desc, "desc", false, "sort descending")
	cmd.Flags().StringVarP(&f.Filter, "filter", "f", "", `filter expression on the loaded page, e.g. 'amount > 100 AND status = "Failed"'`)
}

// Changed reports whether any page-selecting flag was given.
func (f *QueryFlags) Changed(cmd *cobra.Command) bool {
	for _, name := range queryFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (f *QueryFlags) Query(svc *service.RowService) (api.RowQuery, error) {
	q := svc.DefaultQuery()
	if f.Page > 0 {
		q.Page = f.Page
	}
	if f.Limit > 0 {
		q.Limit = f.Limit
	}
	q.Status = strings.TrimSpace(f.Status)
	q.Search = strings.TrimSpace(f.Search)
	q.UploadID = strings.TrimSpace(f.UploadID)
	q.Sort = strings.TrimSpace(f.Sort)
	q.Desc = f.Desc

	if f.Gateway != "" {
		gw, err := model.ParseGateway(f.Gateway)
		if err != nil {
			return api.RowQuery{}, err
		}
		q.Gateway = gw
	}
	return q, nil
}

// Resolve picks the page to load. Without page flags the page holding the
// current selection is reopened, so a selection survives between commands.
func (f *QueryFlags) Resolve(cmd *cobra.Command, svc *service.RowService) (api.RowQuery, error) {
	if !f.Changed(cmd) {
		q, ok, err := svc.SelectedQuery()
		if err != nil {
			return api.RowQuery{}, err
		}
		if ok {
			return q, nil
		}
	}
	return f.Query(svc)
}
