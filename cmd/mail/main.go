package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/config"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// decodeData re-decodes the free-form Data field of a queue message into the
// typed payload of the message's type.
func decodeData(data any, v any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * database (payment receipt status updates)
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("não foi possível criar o pool de conexões", slog.String("error", err.Error()))
		return
	}
	defer dbpool.Close()

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("não foi possível criar o cliente de e-mail", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("não foi possível conectar ao servidor de e-mail", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("não foi possível conectar ao rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("não foi possível abrir o canal do rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"email_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("não foi possível declarar a fila de e-mails", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("não foi possível consumir a fila", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("não foi possível decodificar a mensagem", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				logger.Info("mensagem recebida", slog.String("type", mailMessage.Type), slog.String("to", mailMessage.To))

				from := cfg.Email.From
				if from == "" {
					from = cfg.Email.SMTP.Username
				}

				m := mail.NewMsg()
				if err := m.From(from); err != nil {
					logger.Error("não foi possível definir o remetente", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(mailMessage.To); err != nil {
					logger.Error("não foi possível definir o destinatário", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				var receiptRecordID int64

				switch mailMessage.Type {
				case "create_user":
					tmpl, err := template.ParseFiles("./templates/new_account_email.html")
					if err != nil {
						logger.Error("não foi possível carregar o template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("não foi possível montar o corpo do e-mail", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Gestão Furquim - Dados de acesso")
				case "reset_password":
					tmpl, err := template.ParseFiles("./templates/reset_password_otp_email.html")
					if err != nil {
						logger.Error("não foi possível carregar o template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("não foi possível montar o corpo do e-mail", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Gestão Furquim - Redefinição de senha")
				case "payment_receipt":
					data := domain.PaymentReceiptMailData{}
					if err := decodeData(mailMessage.Data, &data); err != nil {
						logger.Error("não foi possível decodificar os dados do comprovante", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					receiptRecordID = data.RecordID

					pdfBytes, err := base64.StdEncoding.DecodeString(data.AttachmentPDF)
					if err != nil {
						logger.Error("não foi possível decodificar o PDF do comprovante", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}

					tmpl, err := template.ParseFiles("./templates/payment_receipt_email.html")
					if err != nil {
						logger.Error("não foi possível carregar o template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, data); err != nil {
						logger.Error("não foi possível montar o corpo do e-mail", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.AttachReader(data.AttachmentName, bytes.NewReader(pdfBytes)); err != nil {
						logger.Error("não foi possível anexar o comprovante", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Gestão Furquim - Comprovante de pagamento " + data.ReferenceMonth)
				default:
					logger.Error("tipo de e-mail não suportado", slog.String("type", mailMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("falha ao enviar o e-mail", slog.String("error", err.Error()))
					if receiptRecordID != 0 {
						if err := repo.UpdatePaymentEmailStatus(receiptRecordID, domain.EmailFailed, nil); err != nil {
							logger.Error("não foi possível atualizar o status do e-mail", slog.String("error", err.Error()))
						}
					}
					_ = msg.Nack(false, true) // requeue for retry
					continue
				}

				if receiptRecordID != 0 {
					now := time.Now()
					if err := repo.UpdatePaymentEmailStatus(receiptRecordID, domain.EmailSent, &now); err != nil {
						logger.Error("não foi possível atualizar o status do e-mail", slog.String("error", err.Error()))
					}
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("aguardando mensagens... (CTRL+C para sair)")
	<-sigChan

	slog.Info("encerrando o mail worker...")
	cancel()
	wg.Wait()
	slog.Info("mail worker encerrado com sucesso")
}
