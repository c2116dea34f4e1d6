package container

import "time"

type Transport interface {
	Send(msg string) string
}

type smtpTransport struct {
	Host string `default:"localhost"`
}

func (s *smtpTransport) Send(msg string) string { return s.Host + ":" + msg }

type fakeTransport struct {
	sent []string
}

func (f *fakeTransport) Send(msg string) string {
	f.sent = append(f.sent, msg)
	return "fake:" + msg
}

type Mailer struct {
	Transport Transport
	From      string        `default:"noreply@example.com"`
	Retries   int           `inject:"name=attempts,optional"`
	Timeout   time.Duration `default:"5s"`
	Debug     bool          `inject:"-"`
	secret    string
}

func (m *Mailer) Deliver(to string, subject string) string {
	return m.Transport.Send(to + "/" + subject)
}

type widget struct {
	ID int `inject:"optional"`
}

type node struct {
	Next *node
}

type greeting struct {
	Name string
}

type settings struct {
	Hosts   []string  `default:"[a, b]"`
	Verbose bool      `default:"true"`
	Port    int       `default:"8080"`
	Cache   Transport `inject:"optional"`
}

type broken struct {
	Port int `default:"not-a-number"`
}
