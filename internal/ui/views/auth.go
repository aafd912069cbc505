package views

import (
	"time"

	"github.com/hance08/payops/internal/service"
	"github.com/pterm/pterm"
)

func expiry(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	left := time.Until(t).Round(time.Minute)
	if left <= 0 {
		return pterm.Red(t.Local().Format("2006-01-02 15:04") + " (expired)")
	}
	return t.Local().Format("2006-01-02 15:04") + " (in " + left.String() + ")"
}

func RenderAuthStatus(st *service.AuthStatus) error {
	data := pterm.TableData{
		{"Email", st.Email},
		{"Session Expires", expiry(st.SessionExpiry)},
		{"Token Expires", expiry(st.TokenExpiry)},
	}
	if p := st.Profile; p != nil {
		data = append(data,
			[]string{"Name", p.Name},
			[]string{"Role", p.Role},
		)
	}

	pterm.DefaultSection.Println("Session")
	return pterm.DefaultTable.WithData(data).Render()
}
