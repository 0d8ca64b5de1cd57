// Package review holds the reviewer trust classifier. A review's trust tier
// is derived from identity facts (email verification, profile completeness)
// and interaction history (virtual try-on of the reviewed product).
package review

// ItemType distinguishes what a review targets.
type ItemType string

const (
	ItemTypeProduct  ItemType = "product"
	ItemTypeBoutique ItemType = "boutique"
)

// VerificationType names the tier a review qualified under.
type VerificationType string

const (
	// VerificationPurchase is reserved for a future order signal. It is
	// never assigned today but keeps level 0 so the tiers below need no
	// renumbering when purchases arrive.
	VerificationPurchase     VerificationType = "purchase"
	VerificationTryOn        VerificationType = "try_on"
	VerificationEmailProfile VerificationType = "email_profile"
	VerificationEmail        VerificationType = "email"
)

// Facts are the reviewer's identity and interaction inputs. TriedOnProduct
// only matters for product reviews: it records whether the reviewer ran a
// virtual try-on of the exact product under review.
type Facts struct {
	EmailVerified  bool
	HasFirstName   bool
	HasLastName    bool
	TriedOnProduct bool
}

// Verification is the assigned trust tier. Type is empty and Level is 0
// when the reviewer is unverified.
type Verification struct {
	Verified bool             `json:"is_verified"`
	Type     VerificationType `json:"verification_type,omitempty"`
	Level    int              `json:"verification_level"`
}

// Classify assigns the trust tier for a review. Tiers are evaluated highest
// trust first and the first match wins:
//
//	0 purchase       (reserved, no purchase data source yet)
//	1 try_on         (product reviews only: tried on the product + verified email)
//	2 email_profile  (verified email + first and last name)
//	3 email          (verified email alone)
//
// Anything else, in particular any unverified email, is unverified. Total
// over all inputs; same facts always yield the same tier.
func Classify(itemType ItemType, facts Facts) Verification {
	switch itemType {
	case ItemTypeProduct:
		return classifyProduct(facts)
	default:
		return classifyBoutique(facts)
	}
}

func classifyProduct(facts Facts) Verification {
	if facts.TriedOnProduct && facts.EmailVerified {
		return Verification{Verified: true, Type: VerificationTryOn, Level: 1}
	}
	return classifyIdentity(facts)
}

// Boutique reviews have no per-product interaction, so try-on never applies.
func classifyBoutique(facts Facts) Verification {
	return classifyIdentity(facts)
}

func classifyIdentity(facts Facts) Verification {
	if facts.EmailVerified && facts.HasFirstName && facts.HasLastName {
		return Verification{Verified: true, Type: VerificationEmailProfile, Level: 2}
	}
	if facts.EmailVerified {
		return Verification{Verified: true, Type: VerificationEmail, Level: 3}
	}
	return Verification{}
}
