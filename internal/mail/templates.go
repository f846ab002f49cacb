package mail

import (
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"brocante/internal/domain"
)

// Notification carries everything the two order emails interpolate.
type Notification struct {
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	Items         []domain.OrderItem
	Total         decimal.Decimal
}

type templateData struct {
	Notification
	AdminOrdersURL string
}

var customerTmpl = template.Must(template.New("customer").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #2B1B12; color: white; padding: 20px; border-radius: 8px; text-align: center; }
      .content { padding: 20px; }
      table { width: 100%; border-collapse: collapse; }
      .total { font-size: 18px; font-weight: bold; text-align: right; padding: 20px 0; color: #C46A2A; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Le Studio Brocante</h1>
        <p>Confirmation de votre commande</p>
      </div>
      <div class="content">
        <h2>Bonjour {{.CustomerName}},</h2>
        <p>Merci pour votre commande! Voici les détails:</p>
        <p><strong>Numéro de commande:</strong> #{{.OrderNumber}}</p>
        <h3>Articles commandés:</h3>
        <table>
          <thead>
            <tr style="background-color: #f5f5f5;">
              <th style="padding: 10px; text-align: left;">Produit</th>
              <th style="padding: 10px; text-align: center;">Quantité</th>
              <th style="padding: 10px; text-align: right;">Prix</th>
            </tr>
          </thead>
          <tbody>
            {{range .Items}}
            <tr>
              <td style="padding: 10px; border-bottom: 1px solid #eee;">{{.ProductName}}</td>
              <td style="padding: 10px; border-bottom: 1px solid #eee; text-align: center;">{{.Quantity}}</td>
              <td style="padding: 10px; border-bottom: 1px solid #eee; text-align: right;">€{{.Subtotal.StringFixed 2}}</td>
            </tr>
            {{end}}
          </tbody>
        </table>
        <div class="total">Total: €{{.Total.StringFixed 2}}</div>
        <p>Nous allons préparer votre commande et vous enverrons un email de suivi dans les prochaines heures.</p>
        <p>Merci de votre confiance!</p>
        <p><strong>Le Studio Brocante</strong></p>
      </div>
    </div>
  </body>
</html>`))

var adminTmpl = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #C46A2A; color: white; padding: 20px; border-radius: 8px; text-align: center; }
      .content { padding: 20px; }
      table { width: 100%; border-collapse: collapse; }
      .total { font-size: 18px; font-weight: bold; text-align: right; padding: 20px 0; color: #C46A2A; }
      .alert { background-color: #fff3cd; border: 1px solid #ffc107; padding: 15px; border-radius: 5px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>NOUVELLE COMMANDE!</h1>
      </div>
      <div class="content">
        <div class="alert">
          <p><strong>Une nouvelle commande a été reçue!</strong></p>
        </div>
        <h3>Détails du client:</h3>
        <p><strong>Nom:</strong> {{.CustomerName}}</p>
        <p><strong>Commande:</strong> #{{.OrderNumber}}</p>
        <h3>Articles commandés:</h3>
        <table>
          <thead>
            <tr style="background-color: #f5f5f5;">
              <th style="padding: 10px; text-align: left;">Produit</th>
              <th style="padding: 10px; text-align: center;">Quantité</th>
              <th style="padding: 10px; text-align: right;">Prix</th>
            </tr>
          </thead>
          <tbody>
            {{range .Items}}
            <tr>
              <td style="padding: 10px; border-bottom: 1px solid #eee;">{{.ProductName}}</td>
              <td style="padding: 10px; border-bottom: 1px solid #eee; text-align: center;">{{.Quantity}}</td>
              <td style="padding: 10px; border-bottom: 1px solid #eee; text-align: right;">€{{.Subtotal.StringFixed 2}}</td>
            </tr>
            {{end}}
          </tbody>
        </table>
        <div class="total">Total: €{{.Total.StringFixed 2}}</div>
        <p>
          <a href="{{.AdminOrdersURL}}"
             style="background-color: #C46A2A; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">
            Voir la commande
          </a>
        </p>
      </div>
    </div>
  </body>
</html>`))

// CustomerHTML renders the customer confirmation email.
func CustomerHTML(n Notification) (string, error) {
	var b strings.Builder
	if err := customerTmpl.Execute(&b, templateData{Notification: n}); err != nil {
		return "", err
	}
	return b.String(), nil
}

// AdminHTML renders the admin alert email. adminOrdersURL points at the
// back-office orders page.
func AdminHTML(n Notification, adminOrdersURL string) (string, error) {
	var b strings.Builder
	if err := adminTmpl.Execute(&b, templateData{Notification: n, AdminOrdersURL: adminOrdersURL}); err != nil {
		return "", err
	}
	return b.String(), nil
}
