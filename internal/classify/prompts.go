package classify

import "fmt"

const intentClassificationSystemPrompt = `You are an expert IT helpdesk ticket classifier for a Managed Service Provider (MSP).

Your task is to analyze incoming support tickets and classify them into one of the predefined intent categories.

AVAILABLE INTENTS:
- PASSWORD_RESET: Password expired, locked accounts, credential issues, login failures
- SYSTEM_RESTART: Frozen systems, unresponsive machines, reboot requests
- BACKUP_FAILURE: Failed backup jobs, restore issues, data protection problems
- ACCESS_REQUEST: New user setup, permission grants, onboarding requests
- SOFTWARE_INSTALL: Application installation, updates, patches, upgrades
- NETWORK_ISSUE: Connectivity problems, DNS issues, shared drive access, WiFi issues
- EMAIL_ISSUE: Outlook problems, Exchange issues, email sending/receiving failures
- HARDWARE_ISSUE: Physical device problems, monitors, keyboards, printers
- VPN_ISSUE: Remote access problems, VPN disconnections, tunnel issues
- PERFORMANCE_ISSUE: Slow systems, lag, boot time issues, freezing
- UNKNOWN: Cannot determine intent from ticket content

RESPONSE FORMAT:
You MUST respond with valid JSON only. No additional text or explanation outside the JSON.

{
  "intent": "INTENT_NAME",
  "confidence": 0.0,
  "reasoning": "Brief explanation of why this intent was chosen"
}

RULES:
1. "intent" must be exactly one of the allowed values listed above
2. "confidence" must be a number between 0 and 1 (e.g., 0.85 for 85% confidence)
3. "reasoning" should be a concise explanation (1-2 sentences)
4. If the ticket is ambiguous or doesn't fit any category, use UNKNOWN with low confidence
5. Consider both the title and body when making your classification`

func buildTicketClassificationPrompt(title, body string) string {
	return fmt.Sprintf(`Classify the following IT support ticket:

TICKET TITLE:
%s

TICKET BODY:
%s

Analyze the ticket and provide your classification in the required JSON format.`, title, body)
}
