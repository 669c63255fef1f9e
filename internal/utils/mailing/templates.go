package mailing

import (
	"bytes"
	"html/template"
)

var sharedRecipeTemplate = template.Must(template.New("shared_recipe").Parse(
	`<p>Hi {{.Recipient}},</p>
<p>{{.Sender}} shared the recipe <b>{{.Title}}</b> with you.</p>
<p><a href="{{.Link}}">Open it in your recipe box</a></p>`))

type SharedRecipeMail struct {
	Recipient string
	Sender    string
	Title     string
	Link      string
}

func RenderSharedRecipe(data SharedRecipeMail) (subject string, body string, err error) {
	var buf bytes.Buffer
	if err := sharedRecipeTemplate.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return data.Sender + " shared a recipe with you", buf.String(), nil
}
