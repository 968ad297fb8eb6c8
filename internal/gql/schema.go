package gql

import graphql "github.com/graph-gophers/graphql-go"

// Schema is the typed query/mutation surface served at /graphql.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	"ISO 8601 formatted timestamp"
	scalar DateTime

	enum Gender {
		Male
		Female
		Other
	}

	"Registered account; the password hash is never exposed."
	type User {
		id: ID!
		username: String!
		email: String!
		created_at: DateTime
		updated_at: DateTime
	}

	type Employee {
		eid: ID!
		first_name: String!
		last_name: String!
		email: String!
		gender: Gender!
		designation: String!
		salary: Float!
		date_of_joining: DateTime!
		department: String!
		employee_photo: String
		created_at: DateTime
		updated_at: DateTime
	}

	type AuthPayload {
		token: String!
		user: User!
	}

	type DeleteResponse {
		success: Boolean!
		message: String!
	}

	input SignupInput {
		username: String!
		email: String!
		password: String!
	}

	input AddEmployeeInput {
		first_name: String!
		last_name: String!
		email: String!
		gender: Gender!
		designation: String!
		salary: Float!
		date_of_joining: DateTime
		department: String!
		employee_photo: String
	}

	input UpdateEmployeeInput {
		first_name: String
		last_name: String
		email: String
		gender: Gender
		designation: String
		salary: Float
		date_of_joining: DateTime
		department: String
		employee_photo: String
	}

	type Query {
		"Public: login by username or email"
		login(usernameOrEmail: String!, password: String!): AuthPayload

		"Auth required"
		getAllEmployees: [Employee!]!

		"Auth required"
		getEmployeeById(eid: ID!): Employee

		"Auth required: equality filter on whichever arguments are supplied"
		searchEmployees(designation: String, department: String): [Employee!]!
	}

	type Mutation {
		"Public: register a new account"
		signup(input: SignupInput!): AuthPayload

		"Auth required"
		addEmployee(input: AddEmployeeInput!): Employee

		"Auth required: partial update, absent fields are left untouched"
		updateEmployee(eid: ID!, input: UpdateEmployeeInput!): Employee

		"Auth required: hard delete"
		deleteEmployee(eid: ID!): DeleteResponse
	}
`

// NewSchema parses the SDL against the resolver set. Panics on any
// schema/resolver mismatch, which is a programming error.
func NewSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, r)
}
