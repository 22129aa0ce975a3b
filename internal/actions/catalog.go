// Package actions holds the static per-intent catalogs: suggested
// technician actions and historical resolutions. The catalogs are fixed
// at compile time and validated for exhaustiveness at startup.
package actions

import (
	"fmt"

	"github.com/alphora/alphora/internal/rag"
)

var intentActionMap = map[rag.Intent][]string{
	rag.IntentPasswordReset: {
		"Verify user identity via security questions or manager approval",
		"Reset password in Active Directory",
		"Send temporary password to user via secure channel",
		"Force password change at next logon",
		"Update ticket with resolution details",
	},
	rag.IntentSystemRestart: {
		"Check for unsaved user work",
		"Notify user of impending restart",
		"Execute remote restart via RMM",
		"Verify system comes back online",
		"Confirm with user that issue is resolved",
	},
	rag.IntentBackupFailure: {
		"Check backup server disk space",
		"Verify backup service credentials",
		"Review backup job error logs",
		"Test network connectivity to backup target",
		"Re-run backup job manually if appropriate",
	},
	rag.IntentAccessRequest: {
		"Verify request approval from manager",
		"Create user account in Active Directory",
		"Assign appropriate security groups",
		"Set up email mailbox",
		"Configure VPN access if required",
	},
	rag.IntentSoftwareInstall: {
		"Verify software licensing availability",
		"Check system requirements",
		"Deploy software via RMM",
		"Verify installation success",
		"Configure software settings if needed",
	},
	rag.IntentNetworkIssue: {
		"Verify physical network connection",
		"Check IP address configuration",
		"Test DNS resolution",
		"Verify network share permissions",
		"Check firewall rules if applicable",
	},
	rag.IntentEmailIssue: {
		"Verify Outlook/Exchange connectivity",
		"Check mailbox size and quotas",
		"Clear Outlook cache if needed",
		"Recreate email profile if necessary",
		"Verify autodiscover settings",
	},
	rag.IntentVPNIssue: {
		"Verify VPN client is up to date",
		"Check user VPN credentials",
		"Test base internet connectivity",
		"Review VPN client logs",
		"Escalate to network team if persistent",
	},
	rag.IntentHardwareIssue: {
		"Gather hardware details and symptoms",
		"Escalate to on-site technician",
		"Arrange hardware replacement if needed",
	},
	rag.IntentPerformanceIssue: {
		"Check system resource usage",
		"Review startup programs",
		"Run disk cleanup and defragmentation",
		"Check for malware",
		"Consider hardware upgrade if persistent",
	},
	rag.IntentUnknown: {
		"Review ticket details manually",
		"Request additional information from user",
		"Escalate to appropriate team",
	},
}

var historicalResolutions = map[rag.Intent][]rag.HistoricalResolution{
	rag.IntentPasswordReset: {
		{
			TicketID:   "HIST-001",
			Title:      "User locked out of account",
			Resolution: "Reset password in AD, provided temp password via Teams call",
			Similarity: 0.89,
		},
	},
	rag.IntentSystemRestart: {
		{
			TicketID:   "HIST-002",
			Title:      "Workstation frozen after update",
			Resolution: "Remote restart via Datto RMM, verified system stability post-restart",
			Similarity: 0.85,
		},
	},
	rag.IntentBackupFailure: {
		{
			TicketID:   "HIST-003",
			Title:      "Backup job failed with error 0x80070005",
			Resolution: "Updated service account credentials, re-ran backup successfully",
			Similarity: 0.91,
		},
	},
	rag.IntentAccessRequest:    {},
	rag.IntentSoftwareInstall:  {},
	rag.IntentNetworkIssue:     {},
	rag.IntentEmailIssue:       {},
	rag.IntentHardwareIssue:    {},
	rag.IntentVPNIssue:         {},
	rag.IntentPerformanceIssue: {},
	rag.IntentUnknown:          {},
}

// Catalog adapts the package tables to the orchestrator's catalog
// interface.
type Catalog struct{}

func (Catalog) SuggestedActions(intent rag.Intent) []string {
	return SuggestedActions(intent)
}

func (Catalog) HistoricalResolutions(intent rag.Intent) []rag.HistoricalResolution {
	return HistoricalResolutions(intent)
}

// SuggestedActions returns the technician action list for an intent.
func SuggestedActions(intent rag.Intent) []string {
	if steps, ok := intentActionMap[intent]; ok {
		return steps
	}
	return intentActionMap[rag.IntentUnknown]
}

// HistoricalResolutions returns prior resolutions recorded for an intent.
func HistoricalResolutions(intent rag.Intent) []rag.HistoricalResolution {
	return historicalResolutions[intent]
}

// ValidateCatalogs checks that every intent has a catalog entry. Called
// once at startup; the process should not serve requests with a partial
// catalog.
func ValidateCatalogs() error {
	for _, intent := range rag.AllIntents {
		if _, ok := intentActionMap[intent]; !ok {
			return fmt.Errorf("intent %s has no suggested-actions entry", intent)
		}
		if _, ok := historicalResolutions[intent]; !ok {
			return fmt.Errorf("intent %s has no historical-resolutions entry", intent)
		}
	}
	return nil
}
