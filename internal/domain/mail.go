package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type PaymentReceiptMailData struct {
	RecordID       int64  `json:"recordId"`
	FullName       string `json:"fullName"`
	ReferenceMonth string `json:"referenceMonth"`
	NetValue       string `json:"netValue"`
	// AttachmentPDF is the base64-encoded payment receipt.
	AttachmentPDF  string `json:"attachmentPdf"`
	AttachmentName string `json:"attachmentName"`
}
