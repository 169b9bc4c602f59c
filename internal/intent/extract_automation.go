package intent

import (
	"fmt"
	"regexp"
	"strings"
)

// Notification, reminder and workflow extraction. Notifications and
// reminders synthesize their subject/condition/message from a small set of
// recognized phrasings and fall back to coarse defaults, so their fields are
// never nil.

var (
	notifyDocRe    = regexp.MustCompile(`(?i)when a\s+(.*?)\s+is`)
	notifyStatusRe = regexp.MustCompile(`(?i)is\s+(approved|rejected|submitted|completed|pending)`)

	workflowDocRe   = regexp.MustCompile(`(?i)for\s+(.*?)\s+where`)
	workflowRolesRe = regexp.MustCompile(`(?i)\b(\w+)\s+(?:submits|approves?)`)
)

// Reminder schedules by recognized frequency word. Weekly is the fallback.
const (
	cronWeekly  = "0 9 * * MON"
	cronMonthly = "0 9 1 * *"
	cronDaily   = "0 9 * * *"
)

// ExtractNotification parses "Notify me by email when a claim is fully
// approved" into a notification record.
func ExtractNotification(text string) NotificationFields {
	documentType := "Document"
	if m := notifyDocRe.FindStringSubmatch(text); m != nil {
		documentType = title(strings.TrimRight(strings.TrimSpace(m[1]), "s"))
	}
	status := "Approved"
	if m := notifyStatusRe.FindStringSubmatch(text); m != nil {
		status = title(strings.TrimSpace(m[1]))
	}
	return NotificationFields{
		Subject:      fmt.Sprintf("%s %s", documentType, status),
		DocumentType: documentType,
		Condition:    fmt.Sprintf("doc.status == '%s'", status),
		Message:      fmt.Sprintf("Your %s has been %s.", documentType, strings.ToLower(status)),
	}
}

// ExtractReminder parses "Send weekly reminders for all pending PRFs".
func ExtractReminder(text string) ReminderFields {
	m := strings.ToLower(text)
	f := ReminderFields{Cron: cronWeekly}
	switch {
	case strings.Contains(m, "monthly"):
		f.Cron = cronMonthly
	case strings.Contains(m, "daily"):
		f.Cron = cronDaily
	}
	switch {
	case strings.Contains(m, "prf"):
		f.DocumentType = "PRF"
		f.Condition = "docstatus == 0"
		f.Message = "Reminder: You have pending PRF(s) awaiting approval."
	case strings.Contains(m, "claim"):
		f.DocumentType = "Claim"
		f.Condition = "docstatus == 0"
		f.Message = "Reminder: You have pending claims to review."
	default:
		f.DocumentType = "PRF"
		f.Condition = "docstatus == 0"
		f.Message = "Reminder: You have pending documents."
	}
	return f
}

// ExtractWorkflowRoles parses "Set up an approval workflow for PRFs where
// HOD submits and Director approves". When fewer than two participants are
// found it substitutes the fixed HOD/Director pair so the downstream
// generator always has a valid role chain; that substitution is a coarse
// fallback, not an inference.
func ExtractWorkflowRoles(text string) WorkflowFields {
	documentType := "Document"
	if m := workflowDocRe.FindStringSubmatch(text); m != nil {
		documentType = strings.TrimRight(m[1], "s")
	}
	var roles []string
	for _, m := range workflowRolesRe.FindAllStringSubmatch(text, -1) {
		roles = append(roles, m[1])
	}
	if len(roles) < 2 {
		roles = []string{"HOD", "Director"}
	}
	return WorkflowFields{DocumentType: documentType, Roles: roles}
}
