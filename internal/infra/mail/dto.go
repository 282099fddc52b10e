package mail

type NewLeadAlertData struct {
	TenantName string
	LeadName   string
	FlowType   string
	Whatsapp   string
}
