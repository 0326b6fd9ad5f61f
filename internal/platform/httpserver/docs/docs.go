// Package docs holds the generated OpenAPI description served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/governance/v1/stake/deposits": {
            "post": {
                "summary": "Deposit governance tokens into the stake ledger",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/stake/withdrawals": {
            "post": {
                "summary": "Withdraw staked tokens back to the caller",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/stake/accounts/{account}": {
            "get": {
                "summary": "Read a single stake account balance",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/stake/summary": {
            "get": {
                "summary": "Read the aggregate ledger summary",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/stake/events": {
            "get": {
                "summary": "List recorded stake ledger events",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals": {
            "get": {
                "summary": "List proposals in creation order",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Create a governance proposal",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/governance/v1/proposals/{proposal_id}": {
            "get": {
                "summary": "Read a proposal",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals/{proposal_id}/results": {
            "get": {
                "summary": "Read tallies and derived outcome for a proposal",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals/{proposal_id}/votes": {
            "post": {
                "summary": "Cast a vote on an open proposal",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals/{proposal_id}/votes/{voter}": {
            "get": {
                "summary": "Read one voter's record for a proposal",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals/{proposal_id}/execute": {
            "post": {
                "summary": "Execute a passed proposal",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/proposals/{proposal_id}/cancel": {
            "post": {
                "summary": "Cancel a proposal before its voting window closes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/governance/v1/events": {
            "get": {
                "summary": "List recorded governance events",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Agora Governance API",
	Description:      "Stake-weighted proposal and voting service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
