package model

import "time"

// Employee is the roster entry consumed by token issuance. Employee
// management itself lives outside this engine.
type Employee struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	CompanyID  string    `json:"companyId" bson:"companyId"`
	Email      string    `json:"email" bson:"email"`
	FullName   string    `json:"fullName" bson:"fullName"`
	Department string    `json:"department,omitempty" bson:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
