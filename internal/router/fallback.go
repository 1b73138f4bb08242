package router

import "strings"

const quoteURL = "https://travelbestbets.com/request-a-quote/"
const newsletterURL = "https://travelbestbets.com/services/best-bets-newsletter/"

// UntrustedLinkSentinel stands in for any search-result link that resolved
// outside the approved domain. It is substituted before the answer is shown.
const UntrustedLinkSentinel = "[unverified-link]"

const fallbackBlock = `I can't find a deal but one of our travel consultants would be happy to help you.<br> To get a quote click here: <a href="` + quoteURL + `" target="_blank">Request a quote</a> <br> Or feel free to contact our office: <br> ☎ 1-877-523-7823 <br> 📧 info@travelbestbets.com <br> And get our amazing deals sent right to your inbox. Sign up for our weekly Travel Best Bets Newsletter here: <a href="` + newsletterURL + `" target="_blank">Newsletter</a>`

const quoteAnchor = `<a href="` + quoteURL + `" target="_blank">Request a quote</a>`

// FallbackBlock is the canonical contact/newsletter HTML shown whenever no
// trustworthy answer is found. Constant, no inputs.
func FallbackBlock() string {
	return fallbackBlock
}

// ReplaceUntrustedLink swaps only the sentinel segment for the quote-request
// anchor, keeping the rest of the synthesized answer intact.
func ReplaceUntrustedLink(answer string) string {
	return strings.ReplaceAll(answer, UntrustedLinkSentinel, quoteAnchor)
}
