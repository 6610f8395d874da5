// Package bugbounty provides a Go client SDK for BugBountyKE-KSP,
// the Kenyan security research knowledge-sharing platform.
//
// The SDK covers the API key lifecycle (generation, format validation and
// safe-for-logging masking, see the apikey package) and article publishing
// with typed errors for every failure mode.
//
// Basic usage:
//
//	client, err := bugbounty.New("sk_your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Publish a writeup
//	resp, err := client.PublishArticle(ctx, "SQL Injection in Acme", content,
//	    bugbounty.WithFrontmatter(bugbounty.Frontmatter{
//	        "title":      "SQL Injection in Acme",
//	        "tags":       []string{"sqli", "web"},
//	        "category":   "web",
//	        "difficulty": "medium",
//	        "author":     "jdoe",
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Published:", resp.WebURL)
package bugbounty
