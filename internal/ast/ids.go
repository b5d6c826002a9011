package ast

type (
	// ClassID indexes a class declaration inside a Module.
	ClassID uint32
	// MemberID indexes a member declaration inside a Module.
	MemberID uint32
	// CallID indexes a construction call site inside a Module.
	CallID uint32
	// ExprID indexes an expression node inside a Module.
	ExprID uint32
)

const (
	NoClassID  ClassID  = 0
	NoMemberID MemberID = 0
	NoCallID   CallID   = 0
	NoExprID   ExprID   = 0
)

func (id ClassID) IsValid() bool  { return id != NoClassID }
func (id MemberID) IsValid() bool { return id != NoMemberID }
func (id CallID) IsValid() bool   { return id != NoCallID }
func (id ExprID) IsValid() bool   { return id != NoExprID }
