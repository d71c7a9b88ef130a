// Package ingest provides conversation and historical-data sources: built-in
// samples, conversation text files, and the historical ticket generator and
// CSV importer.
package ingest

import "github.com/deskflow-ai/deskflow/internal/domain"

// SampleConversations holds the built-in demo conversations, keyed by name.
var SampleConversations = map[string]domain.Conversation{
	"password_reset": {
		ConversationID: "conv123",
		Messages: []domain.Turn{
			{Sender: "Customer", Content: "Hi, I'm having trouble logging into my account. It keeps saying invalid password even though I'm sure it's correct.", Timestamp: "2023-06-15 10:05:32"},
			{Sender: "Agent", Content: "Hello! I'm sorry to hear you're having trouble. Let me help you with that. Can you tell me when you last successfully logged in?", Timestamp: "2023-06-15 10:06:45"},
			{Sender: "Customer", Content: "I think it was yesterday. I haven't changed my password recently.", Timestamp: "2023-06-15 10:07:23"},
			{Sender: "Agent", Content: "Thank you for that information. Let's try resetting your password. I'll send a password reset link to your registered email address. Is that okay?", Timestamp: "2023-06-15 10:08:10"},
			{Sender: "Customer", Content: "Yes, that would be great. Thank you!", Timestamp: "2023-06-15 10:08:45"},
			{Sender: "Agent", Content: "You're welcome! I've sent the password reset link. Please check your email and follow the instructions to reset your password. Let me know if you need any further assistance.", Timestamp: "2023-06-15 10:09:30"},
			{Sender: "Customer", Content: "Got it. I'll check now.", Timestamp: "2023-06-15 10:10:05"},
		},
	},
	"billing_issue": {
		ConversationID: "conv456",
		Messages: []domain.Turn{
			{Sender: "Customer", Content: "Hello, I noticed I was charged twice for my monthly subscription. Can you help me get a refund for the duplicate charge?", Timestamp: "2023-06-16 14:12:35"},
			{Sender: "Agent", Content: "I apologize for the inconvenience. Let me check your billing history to verify the duplicate charge. May I have your account email address please?", Timestamp: "2023-06-16 14:13:47"},
			{Sender: "Customer", Content: "It's customer@example.com", Timestamp: "2023-06-16 14:14:22"},
			{Sender: "Agent", Content: "Thank you. I can see that there was indeed a duplicate charge of $29.99 on June 15th. I'll initiate a refund for this amount right away. The refund should process within 3-5 business days.", Timestamp: "2023-06-16 14:16:50"},
			{Sender: "Customer", Content: "That's great, thank you. Do you know why this happened? I want to make sure it doesn't happen again next month.", Timestamp: "2023-06-16 14:17:33"},
			{Sender: "Agent", Content: "It appears there was a system glitch during a scheduled maintenance that affected some accounts. We've already fixed the issue, and I'm adding a note to your account to monitor for any similar issues. Rest assured, this shouldn't happen again.", Timestamp: "2023-06-16 14:19:21"},
			{Sender: "Customer", Content: "Okay, that's good to know. Thanks for resolving this quickly.", Timestamp: "2023-06-16 14:20:05"},
			{Sender: "Agent", Content: "You're welcome! I've sent you an email confirmation of the refund. Is there anything else I can assist you with today?", Timestamp: "2023-06-16 14:21:12"},
			{Sender: "Customer", Content: "No, that's all. Have a good day!", Timestamp: "2023-06-16 14:21:48"},
			{Sender: "Agent", Content: "Thank you for contacting us. Have a wonderful day!", Timestamp: "2023-06-16 14:22:15"},
		},
	},
	"technical_issue": {
		ConversationID: "conv789",
		Messages: []domain.Turn{
			{Sender: "Customer", Content: "Hi there, I'm trying to upload files to my cloud storage, but I keep getting an error saying 'Upload failed: Network error'. I've tried multiple times.", Timestamp: "2023-06-17 09:31:22"},
			{Sender: "Agent", Content: "Hello! I'm sorry to hear you're experiencing issues with file uploads. Let's troubleshoot this together. What type of files are you trying to upload, and what browser and device are you using?", Timestamp: "2023-06-17 09:32:41"},
			{Sender: "Customer", Content: "I'm trying to upload PDF files, about 5MB each. I'm using Chrome on Windows 10 laptop.", Timestamp: "2023-06-17 09:33:28"},
			{Sender: "Agent", Content: "Thank you for that information. Let's try a few things. First, could you clear your browser cache and cookies, then restart your browser and try again?", Timestamp: "2023-06-17 09:34:52"},
			{Sender: "Customer", Content: "I just tried that, but I'm still getting the same error.", Timestamp: "2023-06-17 09:38:15"},
			{Sender: "Agent", Content: "I see. Let's check if it's a connection issue. Can you try uploading using a different network if possible, like switching from Wi-Fi to mobile hotspot?", Timestamp: "2023-06-17 09:39:30"},
			{Sender: "Customer", Content: "I just tried using my phone's hotspot, and it's still not working.", Timestamp: "2023-06-17 09:42:18"},
			{Sender: "Agent", Content: "Thank you for trying that. It seems this might be a more complex issue. I'm going to escalate this to our technical team for further investigation. They'll need remote access to diagnose the problem. Would that be okay with you?", Timestamp: "2023-06-17 09:43:45"},
			{Sender: "Customer", Content: "Yes, that's fine. When can they help me?", Timestamp: "2023-06-17 09:44:20"},
			{Sender: "Agent", Content: "I'll create a high-priority ticket right now. Our technical team will contact you within the next 2 hours via email to schedule a remote session. They'll also run some diagnostics on your account in the meantime.", Timestamp: "2023-06-17 09:45:33"},
			{Sender: "Customer", Content: "Great, thank you. I'll wait for their email.", Timestamp: "2023-06-17 09:46:10"},
		},
	},
}

// SampleConversation looks a sample up by name ("billing_issue") or by its
// conversation id ("conv456").
func SampleConversation(key string) (domain.Conversation, bool) {
	if conv, ok := SampleConversations[key]; ok {
		return conv, true
	}
	for _, conv := range SampleConversations {
		if conv.ConversationID == key {
			return conv, true
		}
	}
	return domain.Conversation{}, false
}
