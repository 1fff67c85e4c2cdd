package analyzer

import "github.com/phishguard/phishguard/pkg/similarity"

// Curated corpus of scam messages observed in the wild, heavy on the
// Kenyan mobile-money variants. Seeded into the similarity index at
// startup so lightly reworded copies of known campaigns still match.
func scamSeeds() []similarity.Seed {
	return []similarity.Seed{
		{ID: "mpesa-suspension", Label: "M-PESA account suspension", Text: "URGENT: Your M-PESA account has been suspended. Verify your PIN immediately at the link below or lose access within 24 hours!"},
		{ID: "mpesa-reversal", Label: "M-PESA reversal con", Text: "I have sent Ksh 5,000 to your number by mistake. Please send it back to this number immediately or I will report you to Safaricom."},
		{ID: "bank-verify", Label: "Bank account verification", Text: "Dear customer, your bank account has been locked due to suspicious activity. Click here now to verify your account details and restore access."},
		{ID: "prize-award", Label: "Prize notification", Text: "Congratulations! You have won Ksh 100,000 in the Safaricom promotion. To claim your prize, send a processing fee of Ksh 500 to the number below."},
		{ID: "delivery-fee", Label: "Package delivery fee", Text: "Your package could not be delivered. A customs fee of $2.99 is required. Pay now at the link or your parcel will be returned!"},
		{ID: "kra-refund", Label: "Tax refund lure", Text: "KRA NOTICE: You are eligible for a tax refund of Ksh 12,450. Confirm your ID number and bank details at the link to receive your refund."},
		{ID: "password-expiry", Label: "Password expiry", Text: "Your email password expires today. Update your password now by clicking here or your mailbox will be permanently deleted!"},
		{ID: "invoice-due", Label: "Fake invoice", Text: "ATTENTION: Invoice #84712 is overdue. Immediate payment of $499 is required to avoid legal action. Download the attached invoice now."},
		{ID: "subscription-renewal", Label: "Subscription renewal", Text: "Your Netflix subscription has been cancelled due to a billing problem. Update your payment information now to avoid losing your account."},
		{ID: "crypto-double", Label: "Investment doubling", Text: "Guaranteed returns! Invest Ksh 1,000 today and receive Ksh 10,000 in 24 hours. Limited slots, send money now to join!"},
		{ID: "helb-disbursement", Label: "Loan disbursement", Text: "HELB: Your loan of Ksh 45,000 is ready for disbursement. Verify your M-PESA PIN at the link below to receive the funds today."},
		{ID: "sim-swap", Label: "SIM swap pretext", Text: "Safaricom: We detected a SIM replacement request on your line. If this was not you, call this number immediately with your ID and PIN to cancel."},
	}
}
