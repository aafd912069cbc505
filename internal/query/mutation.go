package query

// Mutation names a write the client can perform.
type Mutation string

const (
	MutationUpload              Mutation = "upload"
	MutationDeleteUpload        Mutation = "delete-upload"
	MutationRetryUpload         Mutation = "retry-upload"
	MutationCharge              Mutation = "charge"
	MutationRefund              Mutation = "refund"
	MutationBulkCharge          Mutation = "bulk-charge"
	MutationBulkRefund          Mutation = "bulk-refund"
	MutationEditRow             Mutation = "edit-row"
	MutationStripeCreateAccount Mutation = "stripe-create-account"
	MutationSendInvitation      Mutation = "send-invitation"
	MutationLogout              Mutation = "logout"
)

// rowChange covers every mutation that moves a row's status or content.
// Upload sessions carry charged counts, so they go stale too.
var rowChange = []string{ResourceRows, ResourceRow, ResourceAdminTransactions, ResourceUploads}

// graph is the single table of which reads each mutation makes stale.
var graph = map[Mutation][]string{
	MutationUpload:              {ResourceUploads, ResourceRows, ResourceAdminTransactions},
	MutationDeleteUpload:        {ResourceUploads, ResourceRows, ResourceRow, ResourceAdminTransactions},
	MutationRetryUpload:         {ResourceUploads},
	MutationCharge:              rowChange,
	MutationRefund:              rowChange,
	MutationBulkCharge:          rowChange,
	MutationBulkRefund:          rowChange,
	MutationEditRow:             rowChange,
	MutationStripeCreateAccount: {ResourceStripeAccounts},
	MutationSendInvitation:      {ResourceInvitations},
}

// Invalidates returns the resources m makes stale, or all=true when the
// whole cache must go.
func Invalidates(m Mutation) (resources []string, all bool) {
	if m == MutationLogout {
		return nil, true
	}
	return append([]string(nil), graph[m]...), false
}
