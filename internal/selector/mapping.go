// Copyright 2025 Siyadah
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package selector

import "github.com/siyadah/flowgen/internal/intent"

// TriggerRef names a trigger in the capability registry.
type TriggerRef struct {
	Tool    string
	Trigger string
}

// StepRef names an action in the capability registry plus the role it
// plays in the flow template.
type StepRef struct {
	Tool   string
	Action string
	Role   string
}

// Mapping is one intent's flow template: the trigger, the default steps,
// and optional steps appended only when the user names their tool.
type Mapping struct {
	Trigger  TriggerRef
	Steps    []StepRef
	Optional []StepRef
}

// IntentMappings is the hand-curated intent → capability table, the
// single source of truth translating "what the user wants" into "which
// capabilities to invoke". Every reference here must resolve in the
// capability registry; the consistency test enforces that, so a broken
// entry fails the build rather than a production request.
var IntentMappings = map[string]Mapping{
	intent.LeadCapture: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
			{Tool: "hubspot", Action: "create-or-update-contact", Role: "crm"},
			{Tool: "whatsapp", Action: "sendMessage", Role: "notify_customer"},
			{Tool: "slack", Action: "send_channel_message", Role: "notify_team"},
		},
		Optional: []StepRef{
			{Tool: "openai", Action: "ask_chatgpt", Role: "classify"},
			{Tool: "gmail", Action: "send_email", Role: "email_welcome"},
		},
	},

	intent.LeadQualify: {
		Trigger: TriggerRef{Tool: "hubspot", Trigger: "new-contact"},
		Steps: []StepRef{
			{Tool: "openai", Action: "extract-structured-data", Role: "analyze"},
			{Tool: "hubspot", Action: "update-contact", Role: "update_score"},
			{Tool: "slack", Action: "send_channel_message", Role: "notify_team"},
		},
		Optional: []StepRef{
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
	},

	intent.ContactUpdate: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "hubspot", Action: "find-contact", Role: "find"},
			{Tool: "hubspot", Action: "update-contact", Role: "update"},
			{Tool: "google-sheets", Action: "update_row", Role: "sync"},
		},
	},

	intent.SalesFollowup: {
		Trigger: TriggerRef{Tool: "schedule", Trigger: "cron_expression"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "find_rows", Role: "find_no_reply"},
			{Tool: "openai", Action: "ask_chatgpt", Role: "write_followup"},
			{Tool: "gmail", Action: "send_email", Role: "send_followup"},
			{Tool: "slack", Action: "send_channel_message", Role: "notify_sales"},
		},
		Optional: []StepRef{
			{Tool: "whatsapp", Action: "sendMessage", Role: "whatsapp_followup"},
			{Tool: "google-sheets", Action: "update_row", Role: "update_status"},
		},
	},

	intent.AppointmentBook: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "google-calendar", Action: "google_calendar_get_events", Role: "check_availability"},
			{Tool: "google-calendar", Action: "create_google_calendar_event", Role: "create_event"},
			{Tool: "whatsapp", Action: "sendMessage", Role: "confirm_customer"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
		Optional: []StepRef{
			{Tool: "gmail", Action: "send_email", Role: "email_confirm"},
			{Tool: "slack", Action: "send_channel_message", Role: "notify_team"},
		},
	},

	intent.AppointmentRemind: {
		Trigger: TriggerRef{Tool: "google-calendar", Trigger: "event_starts_in"},
		Steps: []StepRef{
			{Tool: "google-calendar", Action: "google_calendar_get_event_by_id", Role: "get_details"},
			{Tool: "whatsapp", Action: "send-template-message", Role: "remind_customer"},
		},
		Optional: []StepRef{
			{Tool: "gmail", Action: "send_email", Role: "email_remind"},
			{Tool: "google-sheets", Action: "update_row", Role: "log"},
		},
	},

	intent.AppointmentCancel: {
		Trigger: TriggerRef{Tool: "google-calendar", Trigger: "event_cancelled"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "find_rows", Role: "find_booking"},
			{Tool: "whatsapp", Action: "sendMessage", Role: "notify_customer"},
			{Tool: "google-sheets", Action: "update_row", Role: "update_status"},
		},
		Optional: []StepRef{
			{Tool: "google-calendar", Action: "create_quick_event", Role: "reschedule"},
		},
	},

	intent.InvoiceSend: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "find_rows", Role: "get_client"},
			{Tool: "stripe", Action: "create_invoice", Role: "create_invoice"},
			{Tool: "stripe", Action: "create_payment_link", Role: "payment_link"},
			{Tool: "whatsapp", Action: "sendMessage", Role: "send_to_customer"},
			{Tool: "gmail", Action: "send_email", Role: "email_invoice"},
		},
		Optional: []StepRef{
			{Tool: "google-sheets", Action: "update_row", Role: "mark_sent"},
		},
	},

	intent.PaymentFollow: {
		Trigger: TriggerRef{Tool: "schedule", Trigger: "every_day"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "find_rows", Role: "find_overdue"},
			{Tool: "whatsapp", Action: "sendMessage", Role: "remind_customer"},
			{Tool: "google-sheets", Action: "update_row", Role: "log_follow"},
		},
		Optional: []StepRef{
			{Tool: "gmail", Action: "send_email", Role: "email_remind"},
			{Tool: "slack", Action: "send_channel_message", Role: "notify_team"},
		},
	},

	intent.NotifyWhatsApp: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "whatsapp", Action: "sendMessage", Role: "send"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
	},

	intent.NotifyEmail: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "gmail", Action: "send_email", Role: "send"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
	},

	intent.NotifySMS: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "twilio", Action: "custom_api_call", Role: "send"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
	},

	intent.NotifyMulti: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "whatsapp", Action: "sendMessage", Role: "whatsapp"},
			{Tool: "gmail", Action: "send_email", Role: "email"},
			{Tool: "slack", Action: "send_channel_message", Role: "slack"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
	},

	intent.ReportDaily: {
		Trigger: TriggerRef{Tool: "schedule", Trigger: "every_day"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "get_next_rows", Role: "fetch_data"},
			{Tool: "openai", Action: "ask_chatgpt", Role: "summarize"},
			{Tool: "slack", Action: "send_channel_message", Role: "post_report"},
		},
		Optional: []StepRef{
			{Tool: "gmail", Action: "send_email", Role: "email_report"},
		},
	},

	intent.ReportWeekly: {
		Trigger: TriggerRef{Tool: "schedule", Trigger: "every_week"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "get_next_rows", Role: "fetch_data"},
			{Tool: "openai", Action: "ask_chatgpt", Role: "summarize"},
			{Tool: "slack", Action: "send_channel_message", Role: "post_report"},
			{Tool: "gmail", Action: "send_email", Role: "email_report"},
		},
	},

	intent.ReportCustom: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "find_rows", Role: "query"},
			{Tool: "openai", Action: "ask_chatgpt", Role: "analyze"},
			{Tool: "slack", Action: "send_channel_message", Role: "deliver"},
		},
	},

	intent.SupportTicket: {
		Trigger: TriggerRef{Tool: "gmail", Trigger: "gmail_new_email_received"},
		Steps: []StepRef{
			{Tool: "openai", Action: "ask_chatgpt", Role: "classify"},
			{Tool: "jira-cloud", Action: "create_issue", Role: "create_ticket"},
			{Tool: "slack", Action: "send_channel_message", Role: "notify_team"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
	},

	intent.SupportAutoReply: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "openai", Action: "ask_chatgpt", Role: "generate_reply"},
			{Tool: "whatsapp", Action: "sendMessage", Role: "reply"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
		Optional: []StepRef{
			{Tool: "notion", Action: "create_database_item", Role: "knowledge_base"},
		},
	},

	intent.OrderNew: {
		Trigger: TriggerRef{Tool: "shopify", Trigger: "new_abandoned_checkout"},
		Steps: []StepRef{
			{Tool: "shopify", Action: "get_customer", Role: "get_customer"},
			{Tool: "whatsapp", Action: "sendMessage", Role: "confirm"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
		Optional: []StepRef{
			{Tool: "slack", Action: "send_channel_message", Role: "notify_team"},
			{Tool: "gmail", Action: "send_email", Role: "email_receipt"},
		},
	},

	intent.OrderStatus: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "shopify", Action: "get_customer_orders", Role: "lookup"},
			{Tool: "whatsapp", Action: "sendMessage", Role: "reply_status"},
		},
	},

	intent.InventoryAlert: {
		Trigger: TriggerRef{Tool: "schedule", Trigger: "every_day"},
		Steps: []StepRef{
			{Tool: "shopify", Action: "get_products", Role: "check_stock"},
			{Tool: "slack", Action: "send_channel_message", Role: "alert"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
	},

	intent.DataSync: {
		Trigger: TriggerRef{Tool: "schedule", Trigger: "every_hour"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "get_next_rows", Role: "source"},
			{Tool: "google-sheets", Action: "update_row", Role: "destination"},
		},
		Optional: []StepRef{
			{Tool: "airtable", Action: "airtable_update_record", Role: "alt_destination"},
		},
	},

	intent.SheetLog: {
		Trigger: TriggerRef{Tool: "webhook", Trigger: "catch_webhook"},
		Steps: []StepRef{
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
	},

	intent.CampaignEmail: {
		Trigger: TriggerRef{Tool: "schedule", Trigger: "every_week"},
		Steps: []StepRef{
			{Tool: "openai", Action: "ask_chatgpt", Role: "write_content"},
			{Tool: "mailchimp", Action: "create_campaign", Role: "create"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
	},

	intent.SocialPost: {
		Trigger: TriggerRef{Tool: "schedule", Trigger: "every_day"},
		Steps: []StepRef{
			{Tool: "openai", Action: "ask_chatgpt", Role: "write"},
			{Tool: "twitter", Action: "create-tweet", Role: "post"},
			{Tool: "google-sheets", Action: "insert_row", Role: "log"},
		},
		Optional: []StepRef{
			{Tool: "linkedin", Action: "create_share_update", Role: "linkedin"},
		},
	},
}

// ToolAliases maps localized and colloquial tool names to canonical
// registry ids. Lookups run on normalized text.
var ToolAliases = map[string]string{
	"واتساب": "whatsapp", "واتس": "whatsapp", "واتسب": "whatsapp",
	"جيميل": "gmail", "إيميل": "gmail", "ايميل": "gmail", "بريد": "gmail",
	"شيت": "google-sheets", "شيتس": "google-sheets", "جدول": "google-sheets", "اكسل": "google-sheets",
	"سلاك":    "slack",
	"كالندر":  "google-calendar", "التقويم": "google-calendar",
	"هبسبوت":  "hubspot",
	"شوبيفاي": "shopify",
	"سترايب":  "stripe",
	"تلغرام":  "telegram-bot",
	"نوشن":    "notion",
	"جيرا":    "jira-cloud",
	"ديسكورد": "discord",
	"تويتر":   "twitter",
	"لينكدإن": "linkedin",
	"ميلشيمب": "mailchimp",
	"تيمز":    "microsoft-teams",
	"اوتلوك":  "microsoft-outlook",
	"زووم":    "zoom",

	// English mentions resolve too; the entity patterns match both scripts.
	"whatsapp": "whatsapp",
	"gmail":    "gmail",
	"slack":    "slack",
	"sheet":    "google-sheets",
	"telegram": "telegram-bot",
	"hubspot":  "hubspot",
	"shopify":  "shopify",
	"stripe":   "stripe",
	"jira":     "jira-cloud",
	"notion":   "notion",
}
