package agent

import (
	"fmt"
	"log"

	"github.com/alphora/alphora/internal/rag"
)

// defaultPlanDuration is used when an intent is missing from the duration
// table.
const defaultPlanDuration = 30

type stepTemplate struct {
	action     string
	tool       string
	parameters map[string]interface{}
}

var stepTemplates = map[rag.Intent][]stepTemplate{
	rag.IntentPasswordReset: {
		{"Verify user identity", "identity_verification", map[string]interface{}{"method": "security_questions"}},
		{"Reset password in Active Directory", "active_directory", map[string]interface{}{"operation": "reset_password", "forceChange": true}},
		{"Send temporary password", "secure_messaging", map[string]interface{}{"channel": "teams"}},
		{"Update ticket status", "psa_api", map[string]interface{}{"status": "resolved"}},
	},
	rag.IntentSystemRestart: {
		{"Check for active user sessions", "rmm_agent", map[string]interface{}{"operation": "get_logged_users"}},
		{"Notify user of restart", "rmm_agent", map[string]interface{}{"operation": "send_notification", "message": "System restart in 5 minutes"}},
		{"Execute remote restart", "rmm_agent", map[string]interface{}{"operation": "restart", "delay": 300}},
		{"Verify system online", "rmm_agent", map[string]interface{}{"operation": "ping", "timeout": 600}},
	},
	rag.IntentBackupFailure: {
		{"Check backup server disk space", "rmm_agent", map[string]interface{}{"operation": "check_disk_space"}},
		{"Verify backup service status", "rmm_agent", map[string]interface{}{"operation": "check_service", "serviceName": "backup_service"}},
		{"Review backup error logs", "log_analyzer", map[string]interface{}{"logType": "backup", "timeRange": "24h"}},
		{"Restart backup job", "backup_api", map[string]interface{}{"operation": "restart_job"}},
	},
	rag.IntentSoftwareInstall: {
		{"Check system requirements", "rmm_agent", map[string]interface{}{"operation": "get_system_info"}},
		{"Verify software license", "license_manager", map[string]interface{}{"operation": "check_availability"}},
		{"Deploy software package", "rmm_agent", map[string]interface{}{"operation": "deploy_package"}},
		{"Verify installation", "rmm_agent", map[string]interface{}{"operation": "verify_install"}},
	},
	rag.IntentAccessRequest: {
		{"Verify manager approval", "approval_workflow", map[string]interface{}{"approverType": "manager"}},
		{"Create AD account", "active_directory", map[string]interface{}{"operation": "create_user"}},
		{"Assign security groups", "active_directory", map[string]interface{}{"operation": "add_groups"}},
		{"Setup email mailbox", "exchange_api", map[string]interface{}{"operation": "create_mailbox"}},
	},
	rag.IntentNetworkIssue: {
		{"Check network connectivity", "rmm_agent", map[string]interface{}{"operation": "network_diagnostics"}},
		{"Verify DNS resolution", "rmm_agent", map[string]interface{}{"operation": "dns_lookup"}},
		{"Check share permissions", "active_directory", map[string]interface{}{"operation": "check_permissions"}},
	},
	rag.IntentEmailIssue: {
		{"Check Outlook connectivity", "rmm_agent", map[string]interface{}{"operation": "test_outlook"}},
		{"Verify mailbox status", "exchange_api", map[string]interface{}{"operation": "get_mailbox_status"}},
		{"Clear Outlook cache", "rmm_agent", map[string]interface{}{"operation": "clear_outlook_cache"}},
	},
	rag.IntentVPNIssue: {
		{"Check VPN client version", "rmm_agent", map[string]interface{}{"operation": "get_software_version", "software": "vpn_client"}},
		{"Test internet connectivity", "rmm_agent", map[string]interface{}{"operation": "test_internet"}},
		{"Review VPN logs", "log_analyzer", map[string]interface{}{"logType": "vpn"}},
	},
	rag.IntentHardwareIssue: {
		{"Collect hardware diagnostics", "rmm_agent", map[string]interface{}{"operation": "hardware_diagnostics"}},
		{"Escalate to on-site support", "escalation", map[string]interface{}{"team": "field_services"}},
	},
	rag.IntentPerformanceIssue: {
		{"Check system resources", "rmm_agent", map[string]interface{}{"operation": "get_resource_usage"}},
		{"Review startup programs", "rmm_agent", map[string]interface{}{"operation": "list_startup"}},
		{"Run disk cleanup", "rmm_agent", map[string]interface{}{"operation": "disk_cleanup"}},
	},
	rag.IntentUnknown: {
		{"Escalate for manual review", "escalation", map[string]interface{}{"team": "l2_support"}},
	},
}

var baseDurations = map[rag.Intent]int{
	rag.IntentPasswordReset:    5,
	rag.IntentSystemRestart:    15,
	rag.IntentBackupFailure:    30,
	rag.IntentSoftwareInstall:  20,
	rag.IntentAccessRequest:    45,
	rag.IntentNetworkIssue:     20,
	rag.IntentEmailIssue:       15,
	rag.IntentVPNIssue:         15,
	rag.IntentHardwareIssue:    60,
	rag.IntentPerformanceIssue: 25,
	rag.IntentUnknown:          30,
}

var approvalIntents = map[rag.Intent]bool{
	rag.IntentAccessRequest:   true,
	rag.IntentSoftwareInstall: true,
}

// ValidatePlannerTables checks that every intent has a step template and
// a duration entry.
func ValidatePlannerTables() error {
	for _, intent := range rag.AllIntents {
		if _, ok := stepTemplates[intent]; !ok {
			return fmt.Errorf("intent %s has no step template", intent)
		}
		if _, ok := baseDurations[intent]; !ok {
			return fmt.Errorf("intent %s has no duration entry", intent)
		}
	}
	return nil
}

// Planner expands the fixed per-intent templates into concrete plans.
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

// CreatePlan builds the ordered remediation plan for an intent. The
// knowledge context is available for future template parameterization.
func (p *Planner) CreatePlan(intent rag.Intent, context rag.KnowledgeContext) ActionPlan {
	log.Printf("Creating action plan for intent: %s", intent)

	templates, ok := stepTemplates[intent]
	if !ok {
		templates = stepTemplates[rag.IntentUnknown]
	}

	steps := make([]ActionStep, len(templates))
	for i, tmpl := range templates {
		steps[i] = ActionStep{
			Order:      i + 1,
			Action:     tmpl.action,
			Tool:       tmpl.tool,
			Parameters: tmpl.parameters,
			Status:     StepPending,
		}
	}

	duration, ok := baseDurations[intent]
	if !ok {
		duration = defaultPlanDuration
	}

	plan := ActionPlan{
		Intent:            intent,
		Steps:             steps,
		EstimatedDuration: duration,
		RequiresApproval:  approvalIntents[intent],
	}
	log.Printf("Action plan created with %d steps (estimated %d minutes)", len(steps), duration)
	return plan
}
