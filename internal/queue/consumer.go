package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "net/smtp"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// StartEmailConsumer connects to RabbitMQ, declares the email.requested
// queue (durable), and starts consuming messages. Each message is rendered
// into an email and delivered via SMTP when SMTP_HOST is configured;
// otherwise the rendered message is appended to logs/email.log so local
// runs still show what would have been sent. The function runs a reconnect
// loop with backoff and keeps running indefinitely, logging processing
// errors and rejecting poison messages without requeueing them.
func StartEmailConsumer() error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(brokerURL())
        if err != nil {
            log.Printf("email-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn); err != nil {
            log.Printf("email-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("email-consumer: set QoS failed: %v", err)
    }

    _, err = ch.QueueDeclare(emailQueueName, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(emailQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body); err != nil {
            log.Printf("email-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
    var ev EmailRequestedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    subject, text, err := renderEmail(ev)
    if err != nil {
        return err
    }
    if host := os.Getenv("SMTP_HOST"); host != "" {
        return sendSMTP(host, ev.To, subject, text)
    }
    return appendToLog(ev, subject, text)
}

// renderEmail produces the subject line and plain-text body for an event.
func renderEmail(ev EmailRequestedEvent) (string, string, error) {
    name := ev.Name
    if name == "" {
        name = "there"
    }
    switch ev.Kind {
    case EmailKindRegistration:
        return "Confirm your registration",
            fmt.Sprintf("Hello %s,\n\nPlease confirm your email address by opening the link below:\n\n%s\n\nThe link is valid for 24 hours.\n", name, ev.ConfirmLink),
            nil
    case EmailKindPasswordReset:
        return "Your password reset code",
            fmt.Sprintf("Hello %s,\n\nYour password reset code is: %s\n\nThe code expires in 15 minutes. If you did not request a reset, ignore this message.\n", name, ev.ResetCode),
            nil
    default:
        return "", "", fmt.Errorf("unknown email kind %q", ev.Kind)
    }
}

// sendSMTP delivers the message through a plain SMTP relay. Configuration
// comes from SMTP_HOST, SMTP_PORT, SMTP_FROM and optional SMTP_USER /
// SMTP_PASS for authenticated relays.
func sendSMTP(host, to, subject, text string) error {
    port := os.Getenv("SMTP_PORT")
    if port == "" {
        port = "25"
    }
    from := os.Getenv("SMTP_FROM")
    if from == "" {
        from = "no-reply@localhost"
    }
    var auth smtp.Auth
    if user := os.Getenv("SMTP_USER"); user != "" {
        auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASS"), host)
    }
    msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", from, to, subject, text)
    return smtp.SendMail(host+":"+port, auth, from, []string{to}, []byte(msg))
}

// appendToLog writes a single-line record of the email to logs/email.log.
func appendToLog(ev EmailRequestedEvent, subject, text string) error {
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "email.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    line := fmt.Sprintf("[%s] Email queued | kind=%s | to=%s | subject=%q | link=%q | code=%q\n",
        ev.QueuedAt, ev.Kind, ev.To, subject, ev.ConfirmLink, ev.ResetCode)
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
