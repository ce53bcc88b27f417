package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/masomo-quiz/core"
	"github.com/trezcool/masomo-quiz/core/quiz"
)

// SessionKey is the extras key holding the quiz session id of a log entry.
const SessionKey = "session"

// RollbarLogger reports to Rollbar and echoes every entry to a standard logger.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// person is who an entry is about: the student of a quiz session.
type person struct {
	id, name, email string
}

// split separates the quiz student from the args forwarded to Rollbar.
// The person id is the session id found in the extras, falling back to the student's email.
// args are expected as: error, map[string]interface{} extras, quiz.Student.
func split(msg string, args []interface{}) (*person, []interface{}) {
	var (
		student   *quiz.Student
		sessionID string
	)
	fwd := make([]interface{}, 0, len(args)+1)
	fwd = append(fwd, msg)
	for _, arg := range args {
		switch a := arg.(type) {
		case quiz.Student:
			if student == nil {
				s := a
				student = &s
			}
		case map[string]interface{}:
			if id, ok := a[SessionKey].(string); ok && sessionID == "" {
				sessionID = id
			}
			fwd = append(fwd, a)
		default:
			fwd = append(fwd, a)
		}
	}

	if student == nil && sessionID == "" {
		return nil, fwd
	}
	p := &person{id: sessionID}
	if student != nil {
		p.name, p.email = student.Name, student.Email
		if p.id == "" {
			p.id = student.Email
		}
	}
	if p.id == "" {
		return nil, fwd
	}
	return p, fwd
}

func (l RollbarLogger) report(level, msg string, args []interface{}) {
	p, fwd := split(msg, args)
	if p != nil {
		rollbar.SetPerson(p.id, p.name, p.email)
	} else {
		rollbar.ClearPerson()
	}
	rollbar.Log(level, fwd...)

	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.report(rollbar.DEBUG, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.report(rollbar.INFO, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.report(rollbar.WARN, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.report(rollbar.ERR, msg, args) }

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
