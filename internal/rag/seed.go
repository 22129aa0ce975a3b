package rag

import (
	"context"
	"fmt"
	"log"
)

// SeedKnowledgeBase loads the built-in IT support articles into an empty
// store. Safe to call on every startup; a non-empty store is left alone.
func SeedKnowledgeBase(ctx context.Context, store *VectorStore) error {
	count, err := store.DocumentCount(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to count documents: %v", err)
	}
	if count > 0 {
		log.Printf("Knowledge base already seeded with %d documents, skipping", count)
		return nil
	}

	articles := seedArticles()
	if _, err := store.AddDocuments(ctx, articles); err != nil {
		return fmt.Errorf("failed to seed knowledge base: %v", err)
	}
	log.Printf("Seeded %d knowledge base articles", len(articles))
	return nil
}

func seedArticles() []DocumentInput {
	return []DocumentInput{
		{
			Title: "Active Directory Password Reset Procedure",
			Content: `Standard procedure for resetting user passwords in Active Directory:

1. Open Active Directory Users and Computers (ADUC)
2. Navigate to the user's organizational unit
3. Right-click the user account and select "Reset Password"
4. Generate a secure temporary password (minimum 12 characters, mixed case, numbers, special chars)
5. Check "User must change password at next logon"
6. Communicate password securely via Teams call or encrypted email
7. Verify user can log in successfully
8. Document the password reset in the ticket

Security considerations:
- Always verify user identity before resetting password
- Use manager approval for high-privilege accounts
- Never send passwords via unencrypted email
- Log all password reset activities`,
			Category: CategoryPasswordReset,
			Tags:     []string{"active-directory", "password", "security", "identity"},
		},
		{
			Title: "Self-Service Password Reset (SSPR) Troubleshooting",
			Content: `Troubleshooting guide for Azure AD Self-Service Password Reset issues:

1. User not registered for SSPR: direct user to the SSPR setup portal and ensure MFA methods are configured
2. SSPR not available: check SSPR is enabled for the user's group in Azure AD and verify licensing (Azure AD Premium P1/P2)
3. Password writeback issues: verify Azure AD Connect sync is running and password writeback is enabled
4. Authentication method issues: ensure phone number or email is verified and Microsoft Authenticator is configured`,
			Category: CategoryPasswordReset,
			Tags:     []string{"azure-ad", "sspr", "self-service", "mfa"},
		},
		{
			Title: "Remote System Restart via RMM",
			Content: `Procedure for remotely restarting systems using RMM tools:

Pre-restart checklist:
- Verify user has saved all work
- Check for running critical processes
- Notify user of the restart (5-minute warning)
- Schedule restart outside business hours if possible

Datto RMM: navigate to the device, Quick Actions > Restart, select restart type, monitor completion.
NinjaOne: find the device, Remote Tools > Reboot, choose immediate or scheduled, verify system comes back online.
ConnectWise Automate: locate the computer, Commands > Restart, monitor agent check-in.

Post-restart verification:
- Wait for agent to report online
- Verify critical services started
- Contact user to confirm resolution`,
			Category: CategorySystemRestart,
			Tags:     []string{"rmm", "restart", "datto", "ninjaone", "connectwise"},
		},
		{
			Title: "Windows Blue Screen (BSOD) Troubleshooting",
			Content: `Guide for troubleshooting Windows Blue Screen of Death errors:

Common error codes: CRITICAL_PROCESS_DIED, SYSTEM_SERVICE_EXCEPTION, IRQL_NOT_LESS_OR_EQUAL, PAGE_FAULT_IN_NONPAGED_AREA, KERNEL_DATA_INPAGE_ERROR.

Troubleshooting steps:
1. Collect the BSOD error code and parameters
2. Check Windows Event Viewer for related errors
3. Review recent software and driver installations
4. Run Windows Memory Diagnostic
5. Check disk health with SMART data
6. Boot to Safe Mode to isolate driver issues
7. Update or roll back problematic drivers
8. Run SFC and DISM scans

If recurring, collect memory dump files for analysis and escalate to L3 if hardware failure is suspected.`,
			Category: CategorySystemRestart,
			Tags:     []string{"bsod", "windows", "crash", "drivers", "hardware"},
		},
		{
			Title: "Backup Failure Troubleshooting Guide",
			Content: `Comprehensive guide for diagnosing and resolving backup failures:

Common causes: target volume full, backup destination unreachable, expired service account credentials, VSS errors, locked files, insufficient permissions.

Diagnostic steps:
1. Review backup job error logs
2. Check backup server disk space (aim for 20% free)
3. Verify network path accessibility
4. Test service account credentials
5. Check VSS writer status: vssadmin list writers
6. Review Windows Event Logs

Common resolutions: clear old backups to free space, update backup service credentials, restart the VSS service, schedule backups during off-hours, exclude problematic files.`,
			Category: CategoryBackupFailure,
			Tags:     []string{"backup", "vss", "disaster-recovery", "storage"},
		},
		{
			Title: "Veeam Backup Error Resolution",
			Content: `Common Veeam backup errors and resolutions:

"Failed to create snapshot": check VMware/Hyper-V snapshot limits, verify datastore space, review CBT status.
"Cannot connect to host": verify network connectivity, check Veeam service account permissions, validate SSL certificates.
"RPC server unavailable": check Windows Firewall rules, verify the Remote Registry service, test WMI connectivity.
"Insufficient resources": review proxy server capacity, check repository space, optimize job scheduling.

Best practices: keep Veeam updated, configure retention policies, use incremental backups, enable backup verification.`,
			Category: CategoryBackupFailure,
			Tags:     []string{"veeam", "virtualization", "vmware", "hyper-v"},
		},
		{
			Title: "New User Account Provisioning",
			Content: `Standard procedure for provisioning new user accounts:

1. Verify the approved HR request and collect user details (name, department, manager)
2. Create the Active Directory account with the standard naming convention, initial password with expiry, and correct OUs and groups
3. Create the Exchange/M365 mailbox, configure aliases and distribution lists
4. Assign software licenses, configure SSO applications, set up VPN access if remote
5. Assign and enroll the workstation in RMM and install required software
6. Send the welcome email, update the asset management system and close the ticket`,
			Category: CategoryAccessRequest,
			Tags:     []string{"onboarding", "provisioning", "active-directory", "new-hire"},
		},
		{
			Title: "Software Deployment via RMM",
			Content: `Guide for deploying software through RMM platforms:

Pre-deployment: verify licensing, check system requirements, test in staging, plan a deployment window.

Datto RMM deployment: upload the package to the Component Library, create a deployment policy, assign to target devices, monitor status, verify success.

Common silent install switches: MSI /qn /norestart, EXE /S or /silent, Adobe /sAll /rs, Chrome /silent /install.

Troubleshooting failed deployments: check RMM agent status, review deployment logs, verify permissions and disk space, test a manual installation.`,
			Category: CategorySoftwareInstall,
			Tags:     []string{"software", "deployment", "rmm", "automation"},
		},
		{
			Title: "Network Connectivity Troubleshooting",
			Content: `Step-by-step guide for diagnosing network connectivity issues:

1. Physical connection: verify cables, check link lights, test with a known-good cable
2. IP configuration: run ipconfig /all, verify DHCP lease or static IP, check subnet mask and gateway
3. DNS resolution: nslookup against the configured server, try alternate DNS (8.8.8.8)
4. Gateway connectivity: ping the default gateway, traceroute to the destination
5. Firewall: check Windows Firewall rules and the network profile

Network share access issues: verify NTFS and share permissions, check SMB version compatibility, test the UNC path, verify DNS resolution of the server.`,
			Category: CategoryNetworkIssue,
			Tags:     []string{"network", "connectivity", "dns", "dhcp", "firewall"},
		},
		{
			Title: "Outlook and Exchange Troubleshooting",
			Content: `Comprehensive guide for resolving Outlook and Exchange issues:

Outlook won't start: run outlook.exe /safe, disable add-ins, repair the Office installation.
Send/receive errors: check connectivity, verify Autodiscover, recreate the Outlook profile, check mailbox size limits.
Performance issues: archive old email, compact the OST file, disable unnecessary add-ins, check OST file size.
Exchange Online: verify M365 service health, check the user's license status, review message trace, verify MX and Autodiscover records.`,
			Category: CategoryEmailIssue,
			Tags:     []string{"outlook", "exchange", "m365", "email", "office"},
		},
		{
			Title: "VPN Connection Troubleshooting",
			Content: `Guide for troubleshooting VPN connectivity issues:

Pre-checks: verify base internet connectivity, check the VPN client version, confirm VPN credentials are current.

Common issues:
1. Authentication failures: reset VPN credentials, check account lockout status, verify MFA enrollment
2. Frequent disconnects: test underlying connection stability, review client logs, check for split-tunnel conflicts
3. Cannot reach internal resources: verify tunnel routes, check internal DNS assignment, confirm firewall rules

Escalate to the network team when the concentrator itself shows errors or multiple users are affected.`,
			Category: CategoryVPNIssue,
			Tags:     []string{"vpn", "remote-access", "anyconnect", "tunnel"},
		},
		{
			Title: "Printer and Peripheral Diagnostics",
			Content: `Hardware diagnostics for common peripheral failures:

Printers: check power and network/USB connection, clear the print queue, restart the spooler service, reinstall or update drivers, print a test page from the device panel.
Monitors: test with a known-good cable and port, check input source selection, verify display adapter drivers.
Keyboards and mice: swap ports, test on another machine, replace batteries for wireless devices.

If hardware fault is confirmed, escalate to field services for replacement.`,
			Category: CategoryHardwareIssue,
			Tags:     []string{"hardware", "printer", "monitor", "peripherals"},
		},
		{
			Title: "Slow Workstation Performance Checklist",
			Content: `Checklist for diagnosing slow workstation performance:

1. Check CPU, memory and disk utilization in Task Manager
2. Review startup programs and disable unnecessary entries
3. Run disk cleanup and verify free disk space (minimum 15%)
4. Run a full malware scan
5. Check for pending Windows updates and recent patch regressions
6. Verify disk health with SMART data; an aging HDD is a common cause
7. Consider an SSD or memory upgrade if the hardware is below baseline`,
			Category: CategoryPerformanceIssue,
			Tags:     []string{"performance", "slow", "cleanup", "upgrade"},
		},
		{
			Title: "MSP Support Ticket Triage Guidelines",
			Content: `General guidelines for triaging incoming support tickets:

- Acknowledge every ticket within the SLA response window for its priority
- Collect the affected user, device, and a clear problem statement before troubleshooting
- Search the knowledge base for existing procedures before improvising
- Document every action taken in the ticket timeline
- Escalate early when security implications or data loss are in play`,
			Category: CategoryGeneral,
			Tags:     []string{"triage", "sla", "process"},
		},
	}
}
