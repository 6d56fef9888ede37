package handler

type ContextKey string

var (
	RoleCtxKey         ContextKey = "role"
	SubCtxKey          ContextKey = "sub"
	MyInfoCtx          ContextKey = "myInfo"
	UserInfoCtx        ContextKey = "userInfo"
	TeamCtx            ContextKey = "team"
	HolidayCtx         ContextKey = "holiday"
	PhysiotherapistCtx ContextKey = "physiotherapist"
	ShiftCtx           ContextKey = "shift"
	PaymentControlCtx  ContextKey = "paymentControl"
	PaymentRecordCtx   ContextKey = "paymentRecord"
	ReferenceMonthCtx  ContextKey = "referenceMonth"
)
