package colors

import "github.com/fatih/color"

var (
	SuccessC         = color.New(color.FgGreen)
	WarningC         = color.New(color.FgYellow)
	FailureC         = color.New(color.FgRed)
	TroubleshootingC = color.New(color.Faint)
	UserInputC       = color.New(color.FgCyan)
	FieldC           = color.New(color.FgMagenta)
	FaintC           = color.New(color.Faint)
	BoldC            = color.New(color.Bold)
)

var (
	Success         = SuccessC.Sprint
	Warning         = WarningC.Sprint
	Failure         = FailureC.Sprint
	Troubleshooting = TroubleshootingC.Sprint
	UserInput       = UserInputC.Sprint
	Field           = FieldC.Sprint
	Faint           = FaintC.Sprint
	Bold            = BoldC.Sprint
)
