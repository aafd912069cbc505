package views

import (
	"fmt"
	"sort"

	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/service"
	"github.com/hance08/payops/internal/ui"
	"github.com/hance08/payops/internal/utils"
	"github.com/pterm/pterm"
)

// RenderRowTree shows the page grouped by batch, one node per row.
func RenderRowTree(page *service.Page) error {
	batches := make(map[string][]model.Row)
	for _, r := range page.Rows {
		batch := r.Batch
		if batch == "" {
			batch = "(no batch)"
		}
		batches[batch] = append(batches[batch], r)
	}

	names := make([]string, 0, len(batches))
	for name := range batches {
		names = append(names, name)
	}
	sort.Strings(names)

	var treeData []pterm.TreeNode
	for _, name := range names {
		node := pterm.TreeNode{Text: fmt.Sprintf("%s (%d)", name, len(batches[name]))}
		for _, r := range batches[name] {
			mark := markUnselected
			if page.Selection.Contains(r.ID) {
				mark = markSelected
			}
			node.Children = append(node.Children, pterm.TreeNode{
				Text: fmt.Sprintf("%s %s | %s | %s | %s", mark, r.ID, r.GuestName, utils.FormatMoney(r.Amount, r.Currency), ui.Badge(r.Status)),
			})
		}
		treeData = append(treeData, node)
	}

	pterm.DefaultSection.Println("Rows by Batch")
	if err := pterm.DefaultTree.WithRoot(pterm.TreeNode{Text: "Batches", Children: treeData}).Render(); err != nil {
		return err
	}
	pterm.Println()
	pterm.Info.Printf("Total: %d rows on this page\n", len(page.Rows))
	return nil
}
