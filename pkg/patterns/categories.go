package patterns

// =============================================================================
// PATTERN DEFINITIONS BY CATEGORY
// All patterns are registered here and compiled once at package init.
// This provides a single source of truth for all phishing patterns.
// =============================================================================

// --- CALL TO ACTION PATTERNS ---
func (r *Registry) registerCallToActionPatterns() {
	cat := CategoryCallToAction

	r.register("click_here", `(?i)click\s+(here|below|this\s+link|the\s+link)`, cat, 55, 0.60, "Click-here call to action")
	r.register("click_to_verify", `(?i)click\s+\S+\s+to\s+(verify|confirm|unlock|restore|reactivate|claim)`, cat, 75, 0.80, "Click-to-verify call to action")
	r.register("follow_link", `(?i)follow\s+(this|the)\s+link`, cat, 55, 0.60, "Follow-the-link call to action")
	r.register("open_attachment", `(?i)(open|download|view)\s+(the\s+)?attach(ed|ment)`, cat, 55, 0.55, "Attachment open request")
	r.register("reply_with", `(?i)reply\s+(with|to\s+this\s+(message|sms|text))`, cat, 50, 0.55, "Reply-with-details request")
	r.register("call_number_now", `(?i)call\s+(us\s+)?(now|immediately|today)\s+(on|at)`, cat, 60, 0.60, "Urgent callback request")
	r.register("act_via_link", `(?i)(verify|confirm|update|validate|unlock)\s+(your\s+)?\w+\s+(via|through|using)\s+(this|the)\s+link`, cat, 80, 0.85, "Action via embedded link")

	// Anchor text carrying urgency
	r.register("urgent_link_text", `(?i)(click|tap)\s+(here\s+)?(now|immediately|urgently)`, cat, 70, 0.75, "Urgent link text")
}

// --- BRAND / AUTHORITY IMPERSONATION PATTERNS ---
func (r *Registry) registerImpersonationPatterns() {
	cat := CategoryImpersonation

	r.register("support_team_from", `(?i)(customer\s+(care|support|service)|help\s*desk|support\s+team)\s+(team\s+)?(of|from|at)`, cat, 60, 0.60, "Support-team sender claim")
	r.register("security_department", `(?i)(security|fraud|compliance|verification)\s+(department|team|unit|center)`, cat, 60, 0.60, "Security-department sender claim")
	r.register("official_notice", `(?i)official\s+(notice|notification|communication|alert)`, cat, 55, 0.55, "Official-notice framing")
	r.register("on_behalf_of_bank", `(?i)on\s+behalf\s+of\s+(your\s+)?(bank|provider|institution)`, cat, 65, 0.65, "On-behalf-of-bank claim")
	r.register("system_administrator", `(?i)(system|mail|email)\s+administrator`, cat, 55, 0.55, "System-administrator sender claim")

	// Mimicked service identities with no verification path
	r.register("auto_generated_notice", `(?i)(this\s+is\s+an?\s+)?(automated|auto.?generated)\s+(message|notification|alert)`, cat, 45, 0.45, "Automated-message framing")
}

// --- GENERIC GREETING PATTERNS ---
func (r *Registry) registerGreetingPatterns() {
	cat := CategoryGreeting

	r.register("dear_customer", `(?i)dear\s+(valued\s+)?(customer|client|member|user|subscriber|account\s+holder)`, cat, 50, 0.55, "Impersonal greeting")
	r.register("hello_user", `(?i)(hello|hi|greetings)\s+(there\s+)?(dear|user|customer|member)`, cat, 50, 0.55, "Generic salutation")
	r.register("attention_beneficiary", `(?i)attention[:!]?\s+(dear\s+)?(beneficiary|winner|sir/madam)`, cat, 70, 0.75, "Beneficiary-style salutation")
}

// --- GRAMMAR AND FORMATTING RED FLAGS ---
func (r *Registry) registerGrammarPatterns() {
	cat := CategoryGrammar

	r.register("kindly_do", `(?i)kindly\s+(do\s+the\s+needful|revert|confirm\s+back)`, cat, 55, 0.60, "Scam-typical phrasing")
	r.register("excessive_exclaims", `!{3,}`, cat, 45, 0.50, "Excessive exclamation marks")
	r.register("all_caps_urgent", `\b(URGENT|IMPORTANT|ATTENTION|WARNING|FINAL\s+NOTICE)\b`, cat, 55, 0.55, "Shouting urgency keyword")
	r.register("mixed_currency_amount", `(?i)(ksh|kes|usd|\$|€|£)\s*\d[\d,]*(\.\d+)?\s*(ksh|kes|usd)`, cat, 45, 0.45, "Doubled currency markers")
	r.register("spaced_out_word", `(?i)\b([a-z]\s){4,}[a-z]\b`, cat, 50, 0.55, "Filter-evading spaced word")
}

// --- ACCOUNT ALERT PATTERNS ---
func (r *Registry) registerAccountAlertPatterns() {
	cat := CategoryAccountAlert

	r.register("unusual_activity", `(?i)(unusual|suspicious|unauthori[sz]ed|irregular)\s+(activity|transaction|login|sign.?in|access)`, cat, 70, 0.75, "Unusual-activity alert")
	r.register("login_attempt", `(?i)(login|sign.?in)\s+attempt\s+(from|detected|was\s+made)`, cat, 65, 0.70, "Login-attempt alert")
	r.register("new_device", `(?i)new\s+device\s+(login|detected|registered)`, cat, 60, 0.65, "New-device alert")
	r.register("account_on_hold", `(?i)account\s+(is\s+|has\s+been\s+)?(on\s+hold|restricted|limited|frozen)`, cat, 75, 0.80, "Account-hold alert")
	r.register("security_alert_generic", `(?i)security\s+(alert|warning|notice)[:!]`, cat, 60, 0.65, "Generic security alert")
	r.register("confirm_identity", `(?i)(confirm|prove|re.?validate)\s+your\s+identity`, cat, 75, 0.80, "Identity confirmation demand")
}

// --- INVOICE / PAYMENT SCAM PATTERNS ---
func (r *Registry) registerInvoicePatterns() {
	cat := CategoryInvoiceScam

	r.register("outstanding_invoice", `(?i)(outstanding|unpaid|overdue|pending)\s+(invoice|bill|balance|payment)`, cat, 65, 0.70, "Outstanding invoice claim")
	r.register("payment_failed", `(?i)payment\s+(failed|declined|could\s+not\s+be\s+processed|unsuccessful)`, cat, 65, 0.70, "Failed payment claim")
	r.register("invoice_attached", `(?i)(invoice|receipt|statement)\s+(is\s+)?(attached|enclosed)`, cat, 50, 0.55, "Attached invoice lure")
	r.register("billing_problem", `(?i)(problem|issue|error)\s+with\s+your\s+(billing|payment\s+method|card)`, cat, 65, 0.70, "Billing problem claim")
	r.register("update_payment_info", `(?i)update\s+your\s+(payment|billing)\s+(information|details|method)`, cat, 75, 0.80, "Payment info update demand")
}

// --- SUBSCRIPTION SCAM PATTERNS ---
func (r *Registry) registerSubscriptionPatterns() {
	cat := CategorySubscriptionScam

	r.register("subscription_expiring", `(?i)(subscription|membership|plan)\s+(is\s+|has\s+|will\s+)?(expir(ing|ed|es)|end(ing|ed|s))`, cat, 60, 0.65, "Expiring subscription claim")
	r.register("auto_renewal_failed", `(?i)(auto.?renewal|renewal)\s+(failed|unsuccessful|could\s+not)`, cat, 65, 0.70, "Failed renewal claim")
	r.register("renew_now", `(?i)renew\s+(now|immediately|today)\s+to\s+(avoid|keep|continue)`, cat, 70, 0.75, "Urgent renewal demand")
	r.register("service_interruption", `(?i)(avoid|prevent)\s+(service\s+)?(interruption|disconnection|suspension)`, cat, 65, 0.70, "Service interruption threat")
}

// --- DELIVERY SCAM PATTERNS ---
func (r *Registry) registerDeliveryPatterns() {
	cat := CategoryDeliveryScam

	r.register("package_held", `(?i)(package|parcel|shipment|delivery)\s+(is\s+|has\s+been\s+)?(held|on\s+hold|suspended|pending|stopped)`, cat, 70, 0.75, "Held package claim")
	r.register("delivery_fee", `(?i)(pay|settle)\s+(a\s+)?(small\s+)?(delivery|customs|clearance|shipping|redelivery)\s+fee`, cat, 80, 0.85, "Delivery fee demand")
	r.register("missed_delivery", `(?i)(missed|failed)\s+delivery\s+(attempt|notification)`, cat, 65, 0.70, "Missed delivery claim")
	r.register("track_package_link", `(?i)track\s+your\s+(package|parcel|order)\s+(here|now|below|via)`, cat, 60, 0.65, "Package tracking lure")
	r.register("address_confirmation", `(?i)(confirm|verify|update)\s+your\s+(delivery|shipping)\s+address`, cat, 65, 0.70, "Delivery address confirmation demand")
}

// --- TAX / GOVERNMENT SCAM PATTERNS ---
func (r *Registry) registerTaxPatterns() {
	cat := CategoryTaxScam

	r.register("tax_refund", `(?i)(tax\s+refund|refund\s+of\s+(kes|ksh|usd|\$))`, cat, 75, 0.80, "Tax refund lure")
	r.register("tax_penalty", `(?i)(tax|kra)\s+(penalty|arrears|non.?compliance|fine)`, cat, 70, 0.75, "Tax penalty threat")
	r.register("pin_deactivation", `(?i)(kra\s+)?pin\s+(will\s+be\s+)?(deactivated|suspended|cancelled)`, cat, 80, 0.85, "Tax PIN deactivation threat")
	r.register("government_grant", `(?i)(government|county|state)\s+(grant|relief\s+fund|stimulus)`, cat, 70, 0.75, "Government grant lure")
}

// --- REWARD / LOTTERY SCAM PATTERNS ---
func (r *Registry) registerRewardPatterns() {
	cat := CategoryRewardScam

	r.register("you_have_won", `(?i)(you\s+(have\s+|'ve\s+)?won|congratulations.{0,30}(winner|won|selected))`, cat, 85, 0.90, "Lottery win claim")
	r.register("claim_prize", `(?i)claim\s+your\s+(prize|reward|winnings|gift|voucher)`, cat, 85, 0.90, "Prize claim demand")
	r.register("free_gift", `(?i)(free\s+(gift|airtime|data|bundles|voucher)|gift\s+card\s+waiting)`, cat, 70, 0.75, "Free gift lure")
	r.register("lucky_winner", `(?i)(lucky\s+(winner|customer)|randomly\s+selected)`, cat, 80, 0.85, "Lucky winner claim")
	r.register("promotion_cash", `(?i)(promotion|promo|raffle|draw).{0,40}(ksh|kes|usd|\$)\s*[\d,]+`, cat, 75, 0.80, "Cash promotion lure")
	r.register("unclaimed_funds", `(?i)(unclaimed|dormant)\s+(funds|money|inheritance|account)`, cat, 80, 0.85, "Unclaimed funds lure")
}

// --- INVESTMENT SCAM PATTERNS ---
func (r *Registry) registerInvestmentPatterns() {
	cat := CategoryInvestmentScam

	r.register("guaranteed_returns", `(?i)(guaranteed|assured|risk.?free)\s+(returns?|profits?|income)`, cat, 80, 0.85, "Guaranteed returns claim")
	r.register("double_your_money", `(?i)(double|triple|multiply)\s+your\s+(money|investment|capital)`, cat, 85, 0.90, "Money multiplication claim")
	r.register("crypto_giveaway", `(?i)(bitcoin|btc|crypto|ethereum|eth)\s+(giveaway|doubling|bonus)`, cat, 80, 0.85, "Crypto giveaway lure")
	r.register("daily_profit", `(?i)earn\s+(ksh|kes|usd|\$)?\s*[\d,]+\s*(daily|per\s+day|weekly|per\s+week)`, cat, 75, 0.80, "Daily profit promise")
	r.register("forex_signal", `(?i)(forex|trading)\s+(signals?|robot|bot)\s+(with|that)`, cat, 60, 0.65, "Trading signal lure")
}

// --- DIRECT FINANCIAL REQUEST PATTERNS ---
func (r *Registry) registerFinancialRequestPatterns() {
	cat := CategoryFinancialRequest

	r.register("send_money_to", `(?i)send\s+(the\s+)?(money|cash|amount|payment|funds)\s+to`, cat, 85, 0.90, "Direct money transfer request")
	r.register("send_to_number", `(?i)(send|pay|deposit)\s+(ksh|kes|usd|\$)?\s*[\d,]+\s*(to|via)\s+(\+?\d{6,}|this\s+number|till|paybill)`, cat, 90, 0.95, "Money to phone or till number")
	r.register("paybill_request", `(?i)(paybill|till)\s+(number\s+)?\d{4,}`, cat, 70, 0.75, "Paybill or till number request")
	r.register("processing_fee", `(?i)(processing|activation|registration|release|transfer)\s+fee\s+of`, cat, 85, 0.90, "Advance fee demand")
	r.register("small_fee_unlock", `(?i)(small|token|refundable)\s+fee\s+(to|of|is\s+required)`, cat, 85, 0.90, "Small fee unlock demand")
	r.register("wire_transfer", `(?i)(wire|western\s+union|moneygram)\s+transfer`, cat, 70, 0.75, "Wire transfer request")
	r.register("bank_details_request", `(?i)(send|provide|share|confirm)\s+(us\s+)?your\s+(bank|account)\s+details`, cat, 90, 0.95, "Bank details request")
}

// --- SMS-SPECIFIC TACTIC PATTERNS ---
func (r *Registry) registerSMSTacticPatterns() {
	cat := CategorySMSTactic

	r.register("sms_stop_optout", `(?i)(sms|text)\s+stop\s+to\s+(opt\s*out|unsubscribe|cancel)`, cat, 45, 0.45, "Fake opt-out instruction")
	r.register("sms_short_link_push", `(?i)(tap|click)\s+(the\s+)?link[: ]+\S*(bit\.ly|tinyurl|t\.co|cutt\.ly|rb\.gy)`, cat, 80, 0.85, "Shortened link push in SMS")
	r.register("sms_dial_code", `(?i)dial\s+\*\d{2,3}(\*\d+)*#`, cat, 60, 0.65, "USSD dial instruction")
	r.register("sms_sim_swap", `(?i)sim\s+(card\s+)?(swap|upgrade|replacement|registration)`, cat, 80, 0.85, "SIM swap pretext")
	r.register("sms_agent_number", `(?i)(mpesa|m-pesa)\s+agent\s+(number|line)`, cat, 70, 0.75, "Fake agent number")
	r.register("sms_wrong_transaction", `(?i)(wrongly|mistakenly|accidentally)\s+(sent|transferred|deposited)`, cat, 80, 0.85, "Wrong-transaction reversal scam")
}

// --- EMAIL-SPECIFIC TACTIC PATTERNS ---
func (r *Registry) registerEmailTacticPatterns() {
	cat := CategoryEmailTactic

	r.register("email_mailbox_full", `(?i)(mailbox|inbox|storage)\s+(is\s+)?(full|almost\s+full|over\s+quota)`, cat, 65, 0.70, "Mailbox quota pretext")
	r.register("email_password_expiry", `(?i)(email\s+)?password\s+(will\s+)?(expire|expires|expiring)`, cat, 75, 0.80, "Password expiry pretext")
	r.register("email_undelivered", `(?i)\d+\s+(undelivered|pending|held)\s+(messages?|emails?)`, cat, 70, 0.75, "Undelivered mail pretext")
	r.register("email_upgrade_webmail", `(?i)(upgrade|migrate|re.?validate)\s+your\s+(mailbox|webmail|email\s+account)`, cat, 75, 0.80, "Webmail upgrade pretext")
	r.register("email_docusign", `(?i)(document|file)\s+(has\s+been\s+)?shared\s+with\s+you\s+via`, cat, 55, 0.60, "Shared document lure")
	r.register("email_voicemail", `(?i)new\s+voice\s*(mail|message)\s+(received|waiting)`, cat, 60, 0.65, "Voicemail notification lure")
}
