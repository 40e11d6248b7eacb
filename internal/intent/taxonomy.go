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

package intent

import "regexp"

// Definition is one taxonomy entry. The keyword list is consumed only at
// classification time and never appears in compiler output.
type Definition struct {
	// ID is the stable intent identifier
	ID string

	// NameAr is the Arabic display name
	NameAr string

	// NameEn is the English display name
	NameEn string

	// Category groups related intents (crm, scheduling, finance, ...)
	Category string

	// Keywords are matched as normalized substrings, weighted by length
	Keywords []string
}

// Intent identifiers.
const (
	LeadCapture       = "lead_capture"
	LeadQualify       = "lead_qualify"
	ContactUpdate     = "contact_update"
	SalesFollowup     = "sales_followup"
	AppointmentBook   = "appointment_book"
	AppointmentRemind = "appointment_remind"
	AppointmentCancel = "appointment_cancel"
	InvoiceSend       = "invoice_send"
	PaymentFollow     = "payment_follow"
	NotifyWhatsApp    = "notify_whatsapp"
	NotifyEmail       = "notify_email"
	NotifySMS         = "notify_sms"
	NotifyMulti       = "notify_multi"
	ReportDaily       = "report_daily"
	ReportWeekly      = "report_weekly"
	ReportCustom      = "report_custom"
	SupportTicket     = "support_ticket"
	SupportAutoReply  = "support_auto_reply"
	OrderNew          = "order_new"
	OrderStatus       = "order_status"
	InventoryAlert    = "inventory_alert"
	DataSync          = "data_sync"
	SheetLog          = "sheet_log"
	CampaignEmail     = "campaign_email"
	SocialPost        = "social_post"
)

// Taxonomy is the fixed intent catalog. Declaration order breaks
// confidence ties, so keep the ordering stable.
var Taxonomy = []Definition{
	{
		ID: LeadCapture, NameAr: "التقاط عميل جديد", NameEn: "Lead Capture", Category: "crm",
		Keywords: []string{
			"عميل جديد", "لييد", "ليد", "lead", "يتواصل", "يسجل", "تسجيل",
			"استقبال", "فورم", "نموذج", "تعبئة", "يعبي", "طلب جديد",
			"عميل محتمل", "يتسجل", "اشتراك", "يشترك", "حجز مبدئي",
			"جذب", "جذب عملاء", "زباين", "يجون", "عملاء جدد",
			"من الموقع", "يصنفهم", "تصنيف عملاء", "lead capture",
		},
	},
	{
		ID: LeadQualify, NameAr: "تصنيف العميل", NameEn: "Lead Qualification", Category: "crm",
		Keywords: []string{
			"تصنيف", "تقييم", "نقاط", "score", "مؤهل", "جاهز",
			"حار", "بارد", "دافي", "أولوية", "ترتيب", "تأهيل",
			"فرز", "تصفية", "فلترة",
		},
	},
	{
		ID: ContactUpdate, NameAr: "تحديث بيانات العميل", NameEn: "Update Contact", Category: "crm",
		Keywords: []string{
			"تحديث بيانات", "تعديل", "تغيير", "حدّث", "عدّل",
			"بيانات العميل", "معلومات", "رقم جديد", "إيميل جديد",
		},
	},
	{
		ID: SalesFollowup, NameAr: "متابعة المبيعات", NameEn: "Sales Follow-up", Category: "crm",
		Keywords: []string{
			"متابعة", "متابعه", "فولو اب", "follow up", "ما ردوا", "ما رد",
			"بدون رد", "مارد", "ماردوا", "تابع", "نتابع", "متابعة عملاء",
			"متابعة مبيعات", "ردوا", "يردون", "العملاء اللي", "فولوب",
			"ما تواصلوا", "ما جاوبوا", "مهملين", "عملاء قدام",
		},
	},
	{
		ID: AppointmentBook, NameAr: "حجز موعد", NameEn: "Book Appointment", Category: "scheduling",
		Keywords: []string{
			"موعد", "حجز", "مواعيد", "جدول", "يحجز", "احجز",
			"زيارة", "جلسة", "كشف", "فحص", "استشارة", "ميعاد",
			"بوكينق", "booking", "appointment", "متى فاضي",
			"وقت فاضي", "slot", "حجوزات",
		},
	},
	{
		ID: AppointmentRemind, NameAr: "تذكير بموعد", NameEn: "Appointment Reminder", Category: "scheduling",
		Keywords: []string{
			"تذكير", "ذكّر", "فكّر", "reminder", "قبل الموعد",
			"تنبيه", "إشعار موعد", "لا ينسى", "ما ينسى",
			"ذكّر المرضى", "تذكير موعد", "ذكرهم قبل",
		},
	},
	{
		ID: AppointmentCancel, NameAr: "إلغاء أو إعادة جدولة", NameEn: "Cancel/Reschedule", Category: "scheduling",
		Keywords: []string{
			"إلغاء", "الغي", "ألغي", "يلغي", "إعادة جدولة",
			"تأجيل", "تغيير موعد", "نقل موعد", "ما يقدر يجي",
			"ما قدر", "cancel", "reschedule",
			"يلغي موعده", "يلغي الموعد", "ألغي الموعد",
		},
	},
	{
		ID: InvoiceSend, NameAr: "إرسال فاتورة", NameEn: "Send Invoice", Category: "finance",
		Keywords: []string{
			"فاتورة", "فواتير", "invoice", "حساب", "دفع",
			"سداد", "تحصيل", "مبلغ", "مالية", "محاسبة",
			"ارسل فاتورة", "أرسل الحساب",
		},
	},
	{
		ID: PaymentFollow, NameAr: "متابعة الدفع", NameEn: "Payment Follow-up", Category: "finance",
		Keywords: []string{
			"متأخر", "ما دفع", "تذكير دفع", "متابعة فاتورة",
			"تحصيل", "مديونية", "رصيد", "مستحق", "overdue",
			"لم يسدد", "ما سدد",
			"فواتير", "فاتورة", "فاتوره", "تذكير فواتير", "تصعيد",
			"دفع", "سداد", "المتأخرة", "غير مدفوعة", "invoice",
		},
	},
	{
		ID: NotifyWhatsApp, NameAr: "إرسال واتساب", NameEn: "Send WhatsApp", Category: "notification",
		Keywords: []string{
			"واتساب", "واتس", "whatsapp", "رسالة واتس",
			"يرسل واتس", "أرسل واتساب", "واتسب",
		},
	},
	{
		ID: NotifyEmail, NameAr: "إرسال إيميل", NameEn: "Send Email", Category: "notification",
		Keywords: []string{
			"إيميل", "ايميل", "بريد", "email", "رسالة بريدية",
			"يرسل إيميل", "أرسل بريد",
		},
	},
	{
		ID: NotifySMS, NameAr: "إرسال SMS", NameEn: "Send SMS", Category: "notification",
		Keywords: []string{
			"رسالة نصية", "sms", "مسج", "رسالة قصيرة",
		},
	},
	{
		ID: NotifyMulti, NameAr: "إشعار متعدد القنوات", NameEn: "Multi-channel Notification", Category: "notification",
		Keywords: []string{
			"يبلّغ", "يخبر", "يرسل", "إشعار", "تنبيه", "notify",
			"أبلغ", "خبّر", "نبّه", "أعلم",
		},
	},
	{
		ID: ReportDaily, NameAr: "تقرير يومي", NameEn: "Daily Report", Category: "reporting",
		Keywords: []string{
			"تقرير يومي", "ملخص يومي", "daily report",
			"كل يوم", "نهاية اليوم", "بداية اليوم",
			"تقرير يومي بعدد", "عدد المواعيد",
		},
	},
	{
		ID: ReportWeekly, NameAr: "تقرير أسبوعي", NameEn: "Weekly Report", Category: "reporting",
		Keywords: []string{
			"تقرير أسبوعي", "ملخص أسبوعي", "weekly",
			"كل أسبوع", "نهاية الأسبوع",
		},
	},
	{
		ID: ReportCustom, NameAr: "تقرير مخصص", NameEn: "Custom Report", Category: "reporting",
		Keywords: []string{
			"تقرير", "ملخص", "إحصائيات", "أرقام", "report",
			"بيانات", "dashboard", "لوحة", "كم عدد",
		},
	},
	{
		ID: SupportTicket, NameAr: "تذكرة دعم", NameEn: "Support Ticket", Category: "support",
		Keywords: []string{
			"شكوى", "مشكلة", "تذكرة", "ticket", "دعم",
			"support", "يشتكي", "خلل", "عطل", "ما يشتغل",
			"مو شغال", "خربان",
		},
	},
	{
		ID: SupportAutoReply, NameAr: "رد تلقائي", NameEn: "Auto Reply", Category: "support",
		Keywords: []string{
			"رد تلقائي", "auto reply", "يرد تلقائي",
			"رد آلي", "بوت", "chatbot", "يرد على",
			"رد تلقائي على الرسائل", "رد أوتوماتيك",
		},
	},
	{
		ID: OrderNew, NameAr: "طلب جديد", NameEn: "New Order", Category: "ecommerce",
		Keywords: []string{
			"طلب جديد", "أوردر", "order", "شراء", "يشتري",
			"سلة", "cart", "checkout", "إتمام الطلب",
			"طلب من المتجر", "أوردر جديد",
		},
	},
	{
		ID: OrderStatus, NameAr: "حالة الطلب", NameEn: "Order Status", Category: "ecommerce",
		Keywords: []string{
			"حالة الطلب", "وين طلبي", "تتبع", "tracking",
			"شحن", "توصيل", "وصل", "ما وصل",
		},
	},
	{
		ID: InventoryAlert, NameAr: "تنبيه مخزون", NameEn: "Inventory Alert", Category: "ecommerce",
		Keywords: []string{
			"مخزون", "كمية", "نفذ", "خلص", "inventory",
			"stock", "كمية قليلة", "إعادة طلب",
		},
	},
	{
		ID: DataSync, NameAr: "مزامنة بيانات", NameEn: "Data Sync", Category: "data",
		Keywords: []string{
			"مزامنة", "sync", "ربط", "نقل بيانات",
			"تحديث شيت", "من شيت", "إلى شيت",
			"قاعدة بيانات", "database",
		},
	},
	{
		ID: SheetLog, NameAr: "تسجيل في شيت", NameEn: "Log to Sheet", Category: "data",
		Keywords: []string{
			"سجّل", "شيت", "sheet", "جدول", "spreadsheet",
			"google sheets", "اكسل", "excel", "يحفظ في",
		},
	},
	{
		ID: CampaignEmail, NameAr: "حملة إيميل", NameEn: "Email Campaign", Category: "marketing",
		Keywords: []string{
			"حملة", "campaign", "نشرة", "newsletter",
			"إرسال جماعي", "mass email", "mailchimp",
			"بريدية", "إيميلات", "حملة بريدية", "حملة إيميل",
			"تسويق", "ترحيب عملاء", "ترحيبية", "رسائل تلقائية",
		},
	},
	{
		ID: SocialPost, NameAr: "نشر محتوى", NameEn: "Social Media Post", Category: "marketing",
		Keywords: []string{
			"نشر", "بوست", "post", "تغريدة", "tweet",
			"لينكدإن", "linkedin", "انستقرام", "فيسبوك",
			"سوشال ميديا", "محتوى",
		},
	},
}

// Booster is a sentence-level signal matched against the raw (not
// normalized) request. Boosters capture phrasing a bag of keywords
// misses: explicit request verbs, conditional/trigger words, automation
// wording and sequencing.
type Booster struct {
	Regex *regexp.Regexp
	Boost float64
	Label string
}

// Boosters in evaluation order.
var Boosters = []Booster{
	{Regex: regexp.MustCompile(`أبي|أبغى|أريد|أحتاج|ابي|ابغى`), Boost: 0.05, Label: "request_verb"},
	{Regex: regexp.MustCompile(`لما|إذا|متى ما|كل ما`), Boost: 0.05, Label: "trigger_word"},
	{Regex: regexp.MustCompile(`تلقائي|أوتوماتيك|بدون تدخل|auto`), Boost: 0.1, Label: "automation_intent"},
	{Regex: regexp.MustCompile(`يرسل|يحفظ|يسجل|ينقل|يحدث|يبلغ`), Boost: 0.05, Label: "action_verb"},
	{Regex: regexp.MustCompile(`وبعدين|ثم|بعد كذا|و\s*بعدها`), Boost: 0.05, Label: "sequence"},
}

// Negatives disambiguate intents whose keyword sets legitimately overlap,
// e.g. "reminder" phrasing pulling a booking request toward the wrong
// intent. Presence of a negative keyword subtracts a fixed penalty.
var Negatives = map[string][]string{
	AppointmentBook:   {"يلغي", "الغاء", "الغي", "تذكير", "ذكر", "فكر", "cancel", "تقرير", "ملخص", "احصائيات"},
	AppointmentRemind: {"فواتير", "فاتورة", "فاتوره", "دفع", "سداد", "مديونية", "invoice"},
	LeadCapture:       {"متجر", "اوردر", "order", "شراء", "سله", "طلب من المتجر"},
	NotifyWhatsApp:    {"رد تلقائي", "auto reply", "بوت", "chatbot", "رد الي"},
}

// ByID returns the taxonomy entry for an intent id, or nil.
func ByID(id string) *Definition {
	for i := range Taxonomy {
		if Taxonomy[i].ID == id {
			return &Taxonomy[i]
		}
	}
	return nil
}
