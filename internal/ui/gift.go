package ui

import "strings"

// Bank transfer details shown in the gift modal.
const (
	giftCBU   = "4530000800011022236593"
	giftAlias = "Bodavanesayantonio"
)

func (m Model) renderGift() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.ModalTitle.Width(modalWidth(m.width)).Render("Nuestro Regalo"))
	b.WriteString("\n\n")
	b.WriteString(s.Text.Render("Tu presencia es nuestro mejor regalo. Si además querés" +
		" ayudarnos con nuestra luna de miel, podés hacerlo por transferencia:"))
	b.WriteString("\n\n")
	b.WriteString(s.Label.Render("CBU    "))
	b.WriteString(s.Text.Render(giftCBU))
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Alias  "))
	b.WriteString(s.Text.Render(giftAlias))
	b.WriteString("\n\n")
	b.WriteString(s.Help.Render("b: copiar CBU · a: copiar alias · esc: cerrar"))

	return b.String()
}
