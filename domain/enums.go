package domain

import (
	"encoding/json"
	"fmt"
)

type Status string

const (
	StatusNotDone Status = "NOT_DONE"
	StatusDoing   Status = "DOING"
	StatusDone    Status = "DONE"
)

var Statuses = []Status{StatusNotDone, StatusDoing, StatusDone}

func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s *Status) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if !Status(v).IsValid() {
		return fmt.Errorf("invalid status '%s'", v)
	}
	*s = Status(v)
	return nil
}

type Function string

const (
	FunctionDeveloper Function = "DEVELOPER"
	FunctionAnalyst   Function = "ANALYST"
	FunctionDesigner  Function = "DESIGNER"
	FunctionTester    Function = "TESTER"
	FunctionManager   Function = "MANAGER"
)

var Functions = []Function{FunctionDeveloper, FunctionAnalyst, FunctionDesigner, FunctionTester, FunctionManager}

func (f Function) IsValid() bool {
	for _, v := range Functions {
		if v == f {
			return true
		}
	}
	return false
}

func (f *Function) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if !Function(v).IsValid() {
		return fmt.Errorf("invalid function '%s'", v)
	}
	*f = Function(v)
	return nil
}
