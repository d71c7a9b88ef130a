package knowledge

import "github.com/deskflow-ai/deskflow/internal/domain"

// Built-in article sets. Each function returns a fresh slice so callers can
// truncate or reorder without affecting later lookups.

func billingArticles() []domain.KnowledgeArticle {
	return []domain.KnowledgeArticle{
		{
			Title:     "Billing and Refund Process",
			Content:   "Standard process for handling duplicate charges: 1) Verify the duplicate charge in billing history 2) Initiate refund through the billing system 3) Send confirmation email to customer 4) Monitor account for similar issues",
			URL:       "https://example.com/help/billing-refund",
			Relevance: 0.95,
		},
		{
			Title:     "Subscription Billing Issues",
			Content:   "Common subscription billing issues and resolutions: - Duplicate charges during system maintenance - Failed payments - Subscription renewal problems - Refund processing times",
			URL:       "https://example.com/help/subscription-billing",
			Relevance: 0.90,
		},
		{
			Title:     "Customer Account Monitoring",
			Content:   "Best practices for monitoring customer accounts: 1) Set up alerts for unusual billing patterns 2) Document all billing-related issues 3) Regular account review for high-risk customers",
			URL:       "https://example.com/help/account-monitoring",
			Relevance: 0.85,
		},
	}
}

func technicalArticles() []domain.KnowledgeArticle {
	return []domain.KnowledgeArticle{
		{
			Title:     "Common Technical Issues and Solutions",
			Content:   "Troubleshooting steps for common technical problems: 1) Clear browser cache 2) Try a different network 3) Update software 4) Restart the application",
			URL:       "https://example.com/help/technical-issues",
			Relevance: 0.95,
		},
		{
			Title:     "Network Connectivity Problems",
			Content:   "Solutions for network-related errors: - Check internet connection - Verify firewall settings - Test alternative networks - Reset network settings",
			URL:       "https://example.com/help/network-connectivity",
			Relevance: 0.90,
		},
		{
			Title:     "Software Update Requirements",
			Content:   "Guide to updating software: 1) Check current version 2) Download latest update 3) Install update 4) Verify successful update",
			URL:       "https://example.com/help/software-updates",
			Relevance: 0.85,
		},
	}
}

func accountArticles() []domain.KnowledgeArticle {
	return []domain.KnowledgeArticle{
		{
			Title:     "Account Access Troubleshooting",
			Content:   "Steps to resolve login issues: 1) Reset password 2) Verify email address 3) Check account status 4) Clear browser cookies",
			URL:       "https://example.com/help/account-access",
			Relevance: 0.95,
		},
		{
			Title:     "Password Reset Process",
			Content:   "How to reset your password: - Use the forgot password link - Check your email for the reset link - Create a strong new password - Update password in all devices",
			URL:       "https://example.com/help/password-reset",
			Relevance: 0.90,
		},
		{
			Title:     "Account Security Best Practices",
			Content:   "Recommendations for account security: 1) Use strong passwords 2) Enable two-factor authentication 3) Monitor account activity 4) Sign out from shared devices",
			URL:       "https://example.com/help/account-security",
			Relevance: 0.85,
		},
	}
}

func generalArticles() []domain.KnowledgeArticle {
	return []domain.KnowledgeArticle{
		{
			Title:     "Customer Support Guide",
			Content:   "Overview of customer support services: 1) Chat support 2) Email support 3) Phone support 4) Self-service options",
			URL:       "https://example.com/help/support-guide",
			Relevance: 0.80,
		},
		{
			Title:     "Frequently Asked Questions",
			Content:   "Answers to common questions about our products and services",
			URL:       "https://example.com/help/faq",
			Relevance: 0.75,
		},
		{
			Title:     "Contact Information",
			Content:   "How to reach different support departments: - Technical support - Billing support - Account management - General inquiries",
			URL:       "https://example.com/help/contact",
			Relevance: 0.70,
		},
	}
}
